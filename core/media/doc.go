// Package media decodes, downsizes and re-encodes the image and audio
// payloads the object store reimports.
//
// Images are decoded with the standard decoders plus BMP and PSD, with TGA
// as a fallback for files the registered formats reject. Audio is limited to
// WAV, which is resampled through beep.
package media
