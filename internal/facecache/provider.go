package facecache

import "context"

//go:generate mockgen -source=provider.go -destination=mock/provider_mock.go -package=mock

// Provider computa o embedding de uma imagem facial. A implementação real
// fica num serviço externo; falhas são tratadas como Dependency e a imagem
// é pulada.
type Provider interface {
	Embed(ctx context.Context, image []byte) ([]float64, error)
}
