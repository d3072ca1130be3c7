package integrity

import (
	"testing"

	"asset-variants/core/storage/mocks"
	"asset-variants/core/variant"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	mockClient := new(mocks.Client)
	// nil db: the schema check is never reached here
	feature := NewFeature(mockClient, "test-bucket", zap.NewNop(), nil, variant.DefaultConfig())

	assert.Equal(t, "integrity", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	err := feature.Load(app)
	assert.NoError(t, err)
}
