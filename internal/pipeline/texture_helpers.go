package pipeline

import (
	"go.uber.org/zap"

	"github.com/Volograms/vol-cl-tools/internal/texture"
	"github.com/Volograms/vol-cl-tools/internal/vols"
)

func resizeTextureForFrame(ctx *Context, header *vols.Header, data []byte, width, height int, rep *texture.Report) ([]byte, texture.Warning, error) {
	containerFormat := uint8(texture.ContainerRaw)
	compression := uint8(texture.CompressionNone)
	if header.Version >= vols.Version13 {
		containerFormat = header.TextureContainerFormat
		compression = header.TextureCompression
	}
	return texture.Resize(ctx.TextureCodec, data, containerFormat, compression, width, height, rep)
}

func logFrameField(frameNumber uint32) zap.Field {
	return zap.Uint32("frame", frameNumber)
}
