package importer

import "context"

type ImportService interface {
	Upload(ctx context.Context, req UploadRequest) (SessionResponse, error)
	GetSession(ctx context.Context, id string) (SessionResponse, error)
	UpdateMapping(ctx context.Context, id string, req UpdateMappingRequest) (SessionResponse, error)
	Preview(ctx context.Context, id string) (SessionResponse, error)
	Back(ctx context.Context, id string) (SessionResponse, error)
	Commit(ctx context.Context, id string, req CommitRequest) (SessionResponse, error)
	Discard(ctx context.Context, id string) error
	ExpireSessions(ctx context.Context) (int, error)
}
