package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"district/internal/model"
	"district/internal/repository"
	repoMocks "district/internal/repository/mocks"
	"district/internal/storage"
	storeMocks "district/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"amazon.png":             "amazon.png",
		"Hero Lobby (final).JPG": "Hero-Lobby-final-.JPG",
		`C:\uploads\stc.png`:     "stc.png",
		"../../etc/passwd":       "passwd",
		"   ":                    "",
		"...":                    "",
	}
	for in, want := range tests {
		assert.Equal(t, want, SanitizeFilename(in), in)
	}
}

func TestMediaService_Upload(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name             string
		originalFilename string
		contentType      string
		size             int64
		setupMocks       func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockMediaRepository) io.Reader
		wantErr          error
		wantErrMsg       string
		wantFilename     string
	}{
		{
			name:             "happy path",
			originalFilename: "amazon.png",
			contentType:      "image/png",
			size:             11,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockMediaRepository) io.Reader {
				r := strings.NewReader("hello world")
				mRepo.On("ExistsFilename", ctx, "amazon.png").Return(false, nil)
				mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "media/") && strings.HasSuffix(key, ".png")
				}), r, storage.PutObjectOptions{
					Size:        11,
					ContentType: "image/png",
					Metadata:    map[string]string{"original-filename": "amazon.png"},
				}).Return(storage.ObjectInfo{Key: "media/uuid.png", Size: 11, ContentType: "image/png"}, nil)

				mRepo.On("Create", ctx, mock.MatchedBy(func(m *model.Media) bool {
					return m.Filename == "amazon.png" && m.StoragePath == "media/uuid.png" && m.Alt == "Amazon logo"
				})).Return(&model.Media{ID: "gen-id", Filename: "amazon.png"}, nil)

				return r
			},
			wantFilename: "amazon.png",
		},
		{
			name:             "taken filename gets the next free suffix",
			originalFilename: "amazon.png",
			contentType:      "image/png",
			size:             5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockMediaRepository) io.Reader {
				r := strings.NewReader("hello")
				mRepo.On("ExistsFilename", ctx, "amazon.png").Return(true, nil)
				mRepo.On("ExistsFilename", ctx, "amazon-2.png").Return(true, nil)
				mRepo.On("ExistsFilename", ctx, "amazon-3.png").Return(false, nil)
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{Key: "media/uuid.png", Size: 5}, nil)
				mRepo.On("Create", ctx, mock.MatchedBy(func(m *model.Media) bool {
					return m.Filename == "amazon-3.png"
				})).Return(&model.Media{ID: "gen-id", Filename: "amazon-3.png"}, nil)
				return r
			},
			wantFilename: "amazon-3.png",
		},
		{
			name:             "taken dated filename keeps its digits",
			originalFilename: "2024-10.jpg",
			contentType:      "image/jpeg",
			size:             5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockMediaRepository) io.Reader {
				r := strings.NewReader("hello")
				mRepo.On("ExistsFilename", ctx, "2024-10.jpg").Return(true, nil)
				mRepo.On("ExistsFilename", ctx, "2024-10-2.jpg").Return(false, nil)
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{Key: "media/uuid.jpg", Size: 5}, nil)
				mRepo.On("Create", ctx, mock.MatchedBy(func(m *model.Media) bool {
					return m.Filename == "2024-10-2.jpg"
				})).Return(&model.Media{ID: "gen-id", Filename: "2024-10-2.jpg"}, nil)
				return r
			},
			wantFilename: "2024-10-2.jpg",
		},
		{
			name:             "taken numbered filename keeps its digits",
			originalFilename: "invoice-2023.pdf",
			contentType:      "application/pdf",
			size:             5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockMediaRepository) io.Reader {
				r := strings.NewReader("hello")
				mRepo.On("ExistsFilename", ctx, "invoice-2023.pdf").Return(true, nil)
				mRepo.On("ExistsFilename", ctx, "invoice-2023-2.pdf").Return(false, nil)
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{Key: "media/uuid.pdf", Size: 5}, nil)
				mRepo.On("Create", ctx, mock.MatchedBy(func(m *model.Media) bool {
					return m.Filename == "invoice-2023-2.pdf"
				})).Return(&model.Media{ID: "gen-id", Filename: "invoice-2023-2.pdf"}, nil)
				return r
			},
			wantFilename: "invoice-2023-2.pdf",
		},
		{
			name:             "validation error - nil reader",
			originalFilename: "test.txt",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockMediaRepository) io.Reader {
				return nil
			},
			wantErr: ErrReaderNil,
		},
		{
			name:             "validation error - unusable filename",
			originalFilename: "///",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockMediaRepository) io.Reader {
				return strings.NewReader("x")
			},
			wantErr: ErrFilenameRequired,
		},
		{
			name:             "filename check error",
			originalFilename: "test.txt",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockMediaRepository) io.Reader {
				mRepo.On("ExistsFilename", ctx, "test.txt").Return(false, errors.New("db fail"))
				return strings.NewReader("x")
			},
			wantErrMsg: "check filename test.txt: db fail",
		},
		{
			name:             "storage error",
			originalFilename: "test.txt",
			size:             5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockMediaRepository) io.Reader {
				r := strings.NewReader("hello")
				mRepo.On("ExistsFilename", ctx, "test.txt").Return(false, nil)
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("storage fail"))
				return r
			},
			wantErrMsg: "upload to storage: storage fail",
		},
		{
			name:             "repository error with successful rollback",
			originalFilename: "test.txt",
			size:             5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockMediaRepository) io.Reader {
				r := strings.NewReader("hello")
				mRepo.On("ExistsFilename", ctx, "test.txt").Return(false, nil)
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
						return storage.ObjectInfo{Key: key}
					}, nil)
				mRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(nil)
				return r
			},
			wantErrMsg: "db save failed: db fail",
		},
		{
			name:             "repository error with failed rollback",
			originalFilename: "test.txt",
			size:             5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockMediaRepository) io.Reader {
				r := strings.NewReader("hello")
				mRepo.On("ExistsFilename", ctx, "test.txt").Return(false, nil)
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
						return storage.ObjectInfo{Key: key}
					}, nil)
				mRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(errors.New("delete fail"))
				return r
			},
			wantErrMsg: "rollback delete failed: delete fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockMediaRepository)
			svc := NewMediaService(mStore, mRepo, 0)

			r := tt.setupMocks(mStore, mRepo)

			rec, err := svc.Upload(ctx, r, tt.originalFilename, tt.contentType, tt.size, "Amazon logo")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else if tt.wantErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
				if assert.NotNil(t, rec) {
					assert.Equal(t, tt.wantFilename, rec.Filename)
				}
			}

			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
		})
	}
}

func TestMediaService_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		limit      int
		offset     int
		setupMocks func(mRepo *repoMocks.MockMediaRepository)
		wantErr    bool
		checkRes   func(t *testing.T, res *MediaListResult)
	}{
		{
			name:   "happy path",
			limit:  10,
			offset: 0,
			setupMocks: func(mRepo *repoMocks.MockMediaRepository) {
				mRepo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
					Return(&repository.PageResult[model.Media]{
						Items: []model.Media{{ID: "1"}, {ID: "2"}},
						Total: 2,
					}, nil)
			},
			checkRes: func(t *testing.T, res *MediaListResult) {
				assert.Len(t, res.Items, 2)
				assert.Equal(t, 2, res.Total)
			},
		},
		{
			name:   "pagination boundary - zero limit uses default",
			limit:  0,
			offset: -1,
			setupMocks: func(mRepo *repoMocks.MockMediaRepository) {
				mRepo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
					Return(&repository.PageResult[model.Media]{Items: []model.Media{}, Total: 0}, nil)
			},
		},
		{
			name:  "repository error",
			limit: 10,
			setupMocks: func(mRepo *repoMocks.MockMediaRepository) {
				mRepo.On("List", ctx, mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockMediaRepository)
			svc := NewMediaService(nil, mRepo, 0)

			tt.setupMocks(mRepo)

			res, err := svc.List(ctx, tt.limit, tt.offset)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.checkRes != nil {
					tt.checkRes(t, res)
				}
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestMediaService_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		setupMocks func(mRepo *repoMocks.MockMediaRepository)
		wantErr    error
		wantAnyErr bool
	}{
		{
			name: "happy path",
			id:   "valid-id",
			setupMocks: func(mRepo *repoMocks.MockMediaRepository) {
				mRepo.On("FindByID", ctx, "valid-id").Return(&model.Media{ID: "valid-id"}, nil)
			},
		},
		{
			name:       "validation - empty id",
			setupMocks: func(mRepo *repoMocks.MockMediaRepository) {},
			wantErr:    ErrIDRequired,
		},
		{
			name: "not found - mapping sql.ErrNoRows",
			id:   "missing-id",
			setupMocks: func(mRepo *repoMocks.MockMediaRepository) {
				mRepo.On("FindByID", ctx, "missing-id").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "generic repository error",
			id:   "error-id",
			setupMocks: func(mRepo *repoMocks.MockMediaRepository) {
				mRepo.On("FindByID", ctx, "error-id").Return(nil, errors.New("db fail"))
			},
			wantAnyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockMediaRepository)
			svc := NewMediaService(nil, mRepo, 0)

			tt.setupMocks(mRepo)

			rec, err := svc.Get(ctx, tt.id)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, rec)
			case tt.wantAnyErr:
				assert.Error(t, err)
				assert.Nil(t, rec)
			default:
				assert.NoError(t, err)
				assert.Equal(t, tt.id, rec.ID)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestMediaService_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		setupMocks func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockMediaRepository)
		wantErr    error
		wantErrMsg string
	}{
		{
			name: "happy path",
			id:   "valid-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockMediaRepository) {
				mRepo.On("FindByID", ctx, "valid-id").Return(&model.Media{ID: "valid-id", StoragePath: "media/obj.png"}, nil)
				mStore.On("Delete", ctx, "media/obj.png").Return(nil)
				mRepo.On("Delete", ctx, "valid-id").Return(nil)
			},
		},
		{
			name:       "validation - empty id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockMediaRepository) {},
			wantErr:    ErrIDRequired,
		},
		{
			name: "not found",
			id:   "missing-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockMediaRepository) {
				mRepo.On("FindByID", ctx, "missing-id").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "storage delete error keeps the record",
			id:   "storage-fail-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockMediaRepository) {
				mRepo.On("FindByID", ctx, "storage-fail-id").Return(&model.Media{ID: "id", StoragePath: "path"}, nil)
				mStore.On("Delete", ctx, "path").Return(errors.New("storage fail"))
			},
			wantErrMsg: "delete storage: storage fail",
		},
		{
			name: "repository delete error",
			id:   "repo-fail-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockMediaRepository) {
				mRepo.On("FindByID", ctx, "repo-fail-id").Return(&model.Media{ID: "id", StoragePath: "path"}, nil)
				mStore.On("Delete", ctx, "path").Return(nil)
				mRepo.On("Delete", ctx, "repo-fail-id").Return(errors.New("db fail"))
			},
			wantErrMsg: "db fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockMediaRepository)
			svc := NewMediaService(mStore, mRepo, 0)

			tt.setupMocks(mStore, mRepo)

			err := svc.Delete(ctx, tt.id)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrMsg != "":
				assert.ErrorContains(t, err, tt.wantErrMsg)
			default:
				assert.NoError(t, err)
			}
			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
		})
	}
}

func TestMediaService_Lookup(t *testing.T) {
	ctx := context.Background()
	records := &repository.PageResult[model.Media]{
		Items: []model.Media{
			{ID: "1", Filename: "amazon.png"},
			{ID: "2", Filename: "amazon-2.png"},
			{ID: "3", Filename: "stc.png"},
		},
		Total: 3,
	}

	t.Run("picks the highest variant", func(t *testing.T) {
		mRepo := new(repoMocks.MockMediaRepository)
		mRepo.On("List", ctx, repository.PageQuery{Limit: 50}).Return(records, nil)
		svc := NewMediaService(nil, mRepo, 50)

		rec, err := svc.Lookup(ctx, "amazon.png")

		assert.NoError(t, err)
		assert.Equal(t, "2", rec.ID)
	})

	t.Run("no match", func(t *testing.T) {
		mRepo := new(repoMocks.MockMediaRepository)
		mRepo.On("List", ctx, repository.PageQuery{Limit: 1000}).Return(records, nil)
		svc := NewMediaService(nil, mRepo, 0)

		_, err := svc.Lookup(ctx, "neom.png")

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty filename", func(t *testing.T) {
		svc := NewMediaService(nil, new(repoMocks.MockMediaRepository), 0)

		_, err := svc.Lookup(ctx, "")

		assert.ErrorIs(t, err, ErrFilenameRequired)
	})
}

func TestMediaService_Locate(t *testing.T) {
	ctx := context.Background()

	t.Run("presigns the stored object", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockMediaRepository)
		mRepo.On("FindByFilename", ctx, "amazon.png").Return(&model.Media{StoragePath: "media/abc.png"}, nil)
		mStore.On("Stat", ctx, "media/abc.png").Return(storage.ObjectInfo{Key: "media/abc.png"}, nil)
		mStore.On("PresignGet", ctx, "media/abc.png", presignExpiry).Return("https://minio/abc", nil)

		u, err := NewMediaService(mStore, mRepo, 0).Locate(ctx, "amazon.png")

		assert.NoError(t, err)
		assert.Equal(t, "https://minio/abc", u)
		mStore.AssertExpectations(t)
	})

	t.Run("unknown filename", func(t *testing.T) {
		mRepo := new(repoMocks.MockMediaRepository)
		mRepo.On("FindByFilename", ctx, "nope.png").Return(nil, sql.ErrNoRows)

		_, err := NewMediaService(nil, mRepo, 0).Locate(ctx, "nope.png")

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("presign error", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockMediaRepository)
		mRepo.On("FindByFilename", ctx, "amazon.png").Return(&model.Media{StoragePath: "media/abc.png"}, nil)
		mStore.On("Stat", ctx, "media/abc.png").Return(storage.ObjectInfo{Key: "media/abc.png"}, nil)
		mStore.On("PresignGet", ctx, "media/abc.png", presignExpiry).Return("", errors.New("no creds"))

		_, err := NewMediaService(mStore, mRepo, 0).Locate(ctx, "amazon.png")

		assert.ErrorContains(t, err, "presign media/abc.png: no creds")
	})

	t.Run("record without stored object", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockMediaRepository)
		mRepo.On("FindByFilename", ctx, "amazon.png").Return(&model.Media{StoragePath: "media/gone.png"}, nil)
		mStore.On("Stat", ctx, "media/gone.png").
			Return(storage.ObjectInfo{}, fmt.Errorf("%w: NoSuchKey", storage.ErrObjectNotFound))

		_, err := NewMediaService(mStore, mRepo, 0).Locate(ctx, "amazon.png")

		assert.ErrorIs(t, err, ErrNotFound)
		mStore.AssertNotCalled(t, "PresignGet", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("stat error", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockMediaRepository)
		mRepo.On("FindByFilename", ctx, "amazon.png").Return(&model.Media{StoragePath: "media/abc.png"}, nil)
		mStore.On("Stat", ctx, "media/abc.png").Return(storage.ObjectInfo{}, errors.New("timeout"))

		_, err := NewMediaService(mStore, mRepo, 0).Locate(ctx, "amazon.png")

		assert.ErrorContains(t, err, "stat media/abc.png: timeout")
	})
}

func TestMediaService_Open(t *testing.T) {
	ctx := context.Background()

	t.Run("streams the stored object", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockMediaRepository)
		mRepo.On("FindByID", ctx, "m-1").Return(&model.Media{ID: "m-1", StoragePath: "media/abc.png"}, nil)
		mStore.On("Get", ctx, "media/abc.png").
			Return(io.NopCloser(strings.NewReader("png-bytes")), storage.ObjectInfo{Size: 9}, nil)

		rc, rec, err := NewMediaService(mStore, mRepo, 0).Open(ctx, "m-1")

		require.NoError(t, err)
		defer rc.Close()
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "png-bytes", string(b))
		assert.Equal(t, "m-1", rec.ID)
	})

	t.Run("unknown id", func(t *testing.T) {
		mRepo := new(repoMocks.MockMediaRepository)
		mRepo.On("FindByID", ctx, "m-1").Return(nil, sql.ErrNoRows)

		_, _, err := NewMediaService(nil, mRepo, 0).Open(ctx, "m-1")

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing object", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockMediaRepository)
		mRepo.On("FindByID", ctx, "m-1").Return(&model.Media{ID: "m-1", StoragePath: "media/gone.png"}, nil)
		mStore.On("Get", ctx, "media/gone.png").
			Return(nil, storage.ObjectInfo{}, fmt.Errorf("%w: NoSuchKey", storage.ErrObjectNotFound))

		_, _, err := NewMediaService(mStore, mRepo, 0).Open(ctx, "m-1")

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("storage error", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockMediaRepository)
		mRepo.On("FindByID", ctx, "m-1").Return(&model.Media{ID: "m-1", StoragePath: "media/abc.png"}, nil)
		mStore.On("Get", ctx, "media/abc.png").Return(nil, storage.ObjectInfo{}, errors.New("reset"))

		_, _, err := NewMediaService(mStore, mRepo, 0).Open(ctx, "m-1")

		assert.ErrorContains(t, err, "get media/abc.png: reset")
	})
}
