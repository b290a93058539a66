package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/courseloop/backend/internal/models"
	"github.com/courseloop/backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// fakeAssetStore is a fake implementation of AssetStore backed by maps
type fakeAssetStore struct {
	objects    map[string]bool            // "bucket/path" -> exists
	listings   map[string][]storage.Entry // "bucket|prefix" -> entries
	signable   map[string]string          // "bucket/path" -> signed URL
	listErr    error
	probeCount int
}

func (f *fakeAssetStore) PublicURL(bucket, path string) string {
	return "https://store.example.com/storage/v1/object/public/" + bucket + "/" + path
}

func (f *fakeAssetStore) SignedURL(ctx context.Context, bucket, path string, expiresIn time.Duration) (string, error) {
	if url, ok := f.signable[bucket+"/"+path]; ok {
		return url, nil
	}
	return "", errors.New("object not found")
}

func (f *fakeAssetStore) List(ctx context.Context, bucket, prefix string) ([]storage.Entry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listings[bucket+"|"+prefix], nil
}

func (f *fakeAssetStore) Exists(ctx context.Context, bucket, path string) (bool, error) {
	f.probeCount++
	return f.objects[bucket+"/"+path], nil
}

func newTestResolver(store *fakeAssetStore) *AssetResolver {
	return NewAssetResolver(store, "materials", zap.NewNop())
}

func TestAssetResolver_AbsoluteURLPassthrough(t *testing.T) {
	store := &fakeAssetStore{}
	resolver := newTestResolver(store)

	raw := "https://cdn.example.org/videos/intro.mp4"
	resolved := resolver.ResolveMaterialURL(context.Background(), models.Material{RawURL: raw}, models.LessonContext{})

	assert.Equal(t, raw, resolved)
}

func TestAssetResolver_StorageURLCanonicalized(t *testing.T) {
	store := &fakeAssetStore{
		objects: map[string]bool{"materials/go-basics/lesson_1/cover.png": true},
	}
	resolver := newTestResolver(store)

	// Stale direct link with an expired signing token; the embedded
	// bucket/path is re-derived and a fresh public URL handed back.
	raw := "https://old-host.example.com/storage/v1/object/public/materials/go-basics/lesson_1/cover.png?token=expired"
	resolved := resolver.ResolveMaterialURL(context.Background(), models.Material{RawURL: raw}, models.LessonContext{})

	assert.Equal(t, "https://store.example.com/storage/v1/object/public/materials/go-basics/lesson_1/cover.png", resolved)
}

func TestAssetResolver_StorageURLMissingObjectFallsThrough(t *testing.T) {
	store := &fakeAssetStore{}
	resolver := newTestResolver(store)

	raw := "https://store.example.com/storage/v1/object/public/materials/gone.png"
	resolved := resolver.ResolveMaterialURL(context.Background(), models.Material{RawURL: raw}, models.LessonContext{})

	// Absolute URLs never descend into the expensive fallbacks; the raw
	// link is returned even when the object is gone.
	assert.Equal(t, raw, resolved)
}

func TestAssetResolver_DataURLPassthrough(t *testing.T) {
	store := &fakeAssetStore{}
	resolver := newTestResolver(store)

	raw := "data:image/png;base64,iVBORw0KGgo="
	resolved := resolver.ResolveMaterialURL(context.Background(), models.Material{RawURL: raw}, models.LessonContext{})

	assert.Equal(t, raw, resolved)
	assert.Zero(t, store.probeCount)
}

func TestAssetResolver_ExplicitMetadataWinsOverScan(t *testing.T) {
	store := &fakeAssetStore{
		objects: map[string]bool{
			"course-assets/custom/cover.webp": true,
			// A scannable copy also exists; the explicit location must win
			"materials/go-basics/lesson_1/cover.png": true,
		},
		listings: map[string][]storage.Entry{
			"materials|":                  {{Name: "go-basics/"}},
			"materials|go-basics/lesson_1": {{Name: "cover.png"}},
		},
	}
	resolver := newTestResolver(store)

	material := models.Material{
		RawURL:   "cover.webp",
		Metadata: models.MaterialMetadata{Bucket: "course-assets", Path: "custom/cover.webp"},
	}
	resolved := resolver.ResolveMaterialURL(context.Background(), material, models.LessonContext{Order: 1})

	assert.Equal(t, "https://store.example.com/storage/v1/object/public/course-assets/custom/cover.webp", resolved)
}

func TestAssetResolver_SchemePrefixedLocation(t *testing.T) {
	store := &fakeAssetStore{
		objects: map[string]bool{"media/audio/dialog_03.mp3": true},
	}
	resolver := newTestResolver(store)

	resolved := resolver.ResolveMaterialURL(context.Background(),
		models.Material{RawURL: "storage://media/audio/dialog_03.mp3"},
		models.LessonContext{})

	assert.Equal(t, "https://store.example.com/storage/v1/object/public/media/audio/dialog_03.mp3", resolved)
}

func TestAssetResolver_SignedURLForPrivateObject(t *testing.T) {
	store := &fakeAssetStore{
		// Object is not publicly reachable but signing succeeds
		signable: map[string]string{
			"course-assets/private/exam.png": "https://store.example.com/storage/v1/object/sign/course-assets/private/exam.png?token=abc",
		},
	}
	resolver := newTestResolver(store)

	material := models.Material{
		Metadata: models.MaterialMetadata{Bucket: "course-assets", Path: "private/exam.png"},
	}
	resolved := resolver.ResolveMaterialURL(context.Background(), material, models.LessonContext{})

	assert.Contains(t, resolved, "token=abc")
}

func TestAssetResolver_DirectoryScan(t *testing.T) {
	store := &fakeAssetStore{
		objects: map[string]bool{"materials/spanish-101/lesson_3/diagram.jpg": true},
		listings: map[string][]storage.Entry{
			"materials|": {
				{Name: "empty-course/"},
				{Name: "spanish-101/"},
			},
			"materials|spanish-101/lesson_3": {
				{Name: "notes.txt"},
				{Name: "diagram.jpg"},
			},
		},
	}
	resolver := newTestResolver(store)

	resolved := resolver.ResolveMaterialURL(context.Background(),
		models.Material{RawURL: ""},
		models.LessonContext{CourseID: 5, Order: 3})

	assert.Equal(t, "https://store.example.com/storage/v1/object/public/materials/spanish-101/lesson_3/diagram.jpg", resolved)
}

func TestAssetResolver_BruteForceGuess(t *testing.T) {
	store := &fakeAssetStore{
		objects: map[string]bool{"lesson-images/grammar-intro.jpg": true},
	}
	resolver := newTestResolver(store)

	// Bare filename, wrong extension recorded in the database
	resolved := resolver.ResolveMaterialURL(context.Background(),
		models.Material{RawURL: "grammar-intro.png"},
		models.LessonContext{Order: 2})

	assert.Equal(t, "https://store.example.com/storage/v1/object/public/lesson-images/grammar-intro.jpg", resolved)
}

func TestAssetResolver_TotalFailureReturnsRaw(t *testing.T) {
	store := &fakeAssetStore{listErr: errors.New("storage unreachable")}
	resolver := newTestResolver(store)

	raw := "somewhere/missing.png"
	resolved := resolver.ResolveMaterialURL(context.Background(),
		models.Material{RawURL: raw},
		models.LessonContext{CourseID: 9, CourseSlug: "hist-201", Order: 4})

	assert.Equal(t, raw, resolved)
}

func TestAssetResolver_CancelledContextStopsSearch(t *testing.T) {
	store := &fakeAssetStore{
		listings: map[string][]storage.Entry{
			"materials|": {{Name: "a/"}, {Name: "b/"}, {Name: "c/"}},
		},
	}
	resolver := newTestResolver(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	raw := "lost.png"
	resolved := resolver.ResolveMaterialURL(ctx, models.Material{RawURL: raw}, models.LessonContext{Order: 1})

	assert.Equal(t, raw, resolved)
}

func TestCandidatePaths(t *testing.T) {
	material := models.Material{
		RawURL:   "chart.png",
		Metadata: models.MaterialMetadata{Filename: "chart.png"},
	}
	lesson := models.LessonContext{CourseID: 3, CourseSlug: "go-basics", Order: 2}

	paths := candidatePaths(material, lesson)

	assert.Contains(t, paths, "chart.png")
	assert.Contains(t, paths, "chart.webp")
	assert.Contains(t, paths, "lesson_2.png")
	assert.Contains(t, paths, "go-basics/lesson_2.jpg")
	assert.Contains(t, paths, "course_3/lesson_2.png")

	// Deterministic and duplicate-free
	again := candidatePaths(material, lesson)
	assert.Equal(t, paths, again)
	seen := make(map[string]bool)
	for _, p := range paths {
		assert.False(t, seen[p], "duplicate candidate %s", p)
		seen[p] = true
	}
}

func TestExplicitLocation(t *testing.T) {
	tests := []struct {
		name           string
		material       models.Material
		raw            string
		expectedBucket string
		expectedPath   string
		expectedOK     bool
	}{
		{
			name: "metadata bucket and path",
			material: models.Material{
				Metadata: models.MaterialMetadata{Bucket: "media", Path: "a/b.png"},
			},
			expectedBucket: "media",
			expectedPath:   "a/b.png",
			expectedOK:     true,
		},
		{
			name:           "scheme prefixed raw",
			raw:            "storage://media/a/b.png",
			expectedBucket: "media",
			expectedPath:   "a/b.png",
			expectedOK:     true,
		},
		{
			name: "metadata missing path",
			material: models.Material{
				Metadata: models.MaterialMetadata{Bucket: "media"},
			},
			expectedOK: false,
		},
		{
			name:       "bare filename",
			raw:        "b.png",
			expectedOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, path, ok := explicitLocation(tt.material, tt.raw)

			assert.Equal(t, tt.expectedOK, ok)
			if tt.expectedOK {
				assert.Equal(t, tt.expectedBucket, bucket)
				assert.Equal(t, tt.expectedPath, path)
			}
		})
	}
}
