package integrity

import (
	"context"
	"testing"

	"asset-variants/core/storage/mocks"
	"asset-variants/core/variant"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func emptyListing() <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo)
	close(ch)
	return ch
}

func TestService_Structure(t *testing.T) {
	mockClient := new(mocks.Client)
	logger := zap.NewNop()
	svc := NewService(mockClient, "test-bucket", logger, nil, variant.DefaultConfig())

	t.Run("CheckStructure", func(t *testing.T) {
		mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(emptyListing())

		missing, err := svc.CheckStructure(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, []string{"Assets", "Assets/LowRes"}, missing)
	})

	t.Run("FixStructure", func(t *testing.T) {
		mockClient.On("PutObject", mock.Anything, "test-bucket", mock.Anything, mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)
		err := svc.FixStructure(context.Background(), []string{"Assets/LowRes"})
		assert.NoError(t, err)
		mockClient.AssertCalled(t, "PutObject", mock.Anything, "test-bucket", "Assets/LowRes/", mock.Anything, int64(0), mock.Anything)
	})
}

func TestService_SidecarsUseProfilePrefix(t *testing.T) {
	mockClient := new(mocks.Client)
	cfg := variant.DefaultConfig()
	cfg.NamePrefix = "Mobile"
	svc := NewService(mockClient, "test-bucket", zap.NewNop(), nil, cfg)

	mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
		return opts.Prefix == "Assets/Mobile/"
	})).Return(emptyListing())

	missing, err := svc.CheckSidecars(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, missing)
	mockClient.AssertExpectations(t)
}

func TestService_SchemaWithoutDB(t *testing.T) {
	svc := NewService(new(mocks.Client), "test-bucket", zap.NewNop(), nil, variant.DefaultConfig())
	_, err := svc.CheckSchema()
	assert.Error(t, err)
}
