package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/courseloop/backend/internal/models"
	"github.com/courseloop/backend/internal/storage"
)

// signedURLTTL is the expiry applied when falling back to signed URLs
const signedURLTTL = time.Hour

// candidateBuckets is the fixed list of bucket names probed by the
// path-guessing fallback, most likely first
var candidateBuckets = []string{
	"materials",
	"lesson-images",
	"course-assets",
	"media",
	"public",
}

// candidateExtensions is the fixed list of file extensions probed by the
// path-guessing fallback
var candidateExtensions = []string{".png", ".jpg", ".jpeg", ".webp", ".gif"}

// AssetStore defines the storage operations the resolver needs
type AssetStore interface {
	PublicURL(bucket, path string) string
	SignedURL(ctx context.Context, bucket, path string, expiresIn time.Duration) (string, error)
	List(ctx context.Context, bucket, prefix string) ([]storage.Entry, error)
	Exists(ctx context.Context, bucket, path string) (bool, error)
}

// AssetResolver turns a possibly-incomplete material reference into a
// fetchable URL. Materials are frequently stored with a bare filename
// or nothing useful at all, so resolution walks an ordered fallback
// chain from cheapest to most expensive and stops at the first hit.
type AssetResolver struct {
	store           AssetStore
	materialsBucket string
	logger          *zap.Logger
}

// NewAssetResolver creates a new asset resolver
func NewAssetResolver(store AssetStore, materialsBucket string, logger *zap.Logger) *AssetResolver {
	return &AssetResolver{
		store:           store,
		materialsBucket: materialsBucket,
		logger:          logger,
	}
}

// ResolveMaterialURL resolves a material to a fetchable URL. It never
// returns an error: individual probe failures advance the chain, and
// when every fallback misses the original raw URL is returned unchanged
// so the caller can render a placeholder instead of crashing. Candidate
// ordering is deterministic; context cancellation stops the expensive
// fallback steps early.
func (r *AssetResolver) ResolveMaterialURL(ctx context.Context, material models.Material, lesson models.LessonContext) string {
	raw := strings.TrimSpace(material.RawURL)

	// Step 1: absolute URL passthrough. Stale or malformed direct links
	// into the hosted store are re-derived from the embedded bucket/path.
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		if bucket, path, ok := storage.ParsePublicURL(raw); ok {
			if resolved, ok := r.locate(ctx, bucket, path); ok {
				return resolved
			}
		}
		return raw
	}

	// Step 2: inline-encoded content passthrough
	if strings.HasPrefix(raw, "data:") {
		return raw
	}

	// Step 3: explicit bucket/path metadata, or a bucket/path encoded in
	// the raw URL behind a scheme prefix
	if bucket, path, ok := explicitLocation(material, raw); ok {
		if resolved, ok := r.locate(ctx, bucket, path); ok {
			return resolved
		}
	}

	// Step 4: directory scan for the lesson's ordinal slug
	if resolved, ok := r.scanForLesson(ctx, lesson); ok {
		return resolved
	}

	// Step 5: brute-force candidate bucket x path search
	if resolved, ok := r.guessPaths(ctx, material, lesson); ok {
		return resolved
	}

	// Step 6: nothing worked; hand back the raw URL unchanged
	return raw
}

// locate probes one exact storage location: public URL first, then a
// signed URL for private buckets. Probe failures are swallowed.
func (r *AssetResolver) locate(ctx context.Context, bucket, path string) (string, bool) {
	if bucket == "" || path == "" {
		return "", false
	}

	exists, err := r.store.Exists(ctx, bucket, path)
	if err == nil && exists {
		return r.store.PublicURL(bucket, path), true
	}

	signed, err := r.store.SignedURL(ctx, bucket, path, signedURLTTL)
	if err == nil && signed != "" {
		return signed, true
	}

	return "", false
}

// explicitLocation extracts a bucket/path pair from material metadata or
// from a scheme-prefixed raw URL like "storage://bucket/path"
func explicitLocation(material models.Material, raw string) (bucket, path string, ok bool) {
	if material.Metadata.Bucket != "" && material.Metadata.Path != "" {
		return material.Metadata.Bucket, material.Metadata.Path, true
	}

	if idx := strings.Index(raw, "://"); idx >= 0 {
		rest := raw[idx+3:]
		parts := strings.SplitN(rest, "/", 2)
		if len(parts) == 2 && parts[0] != "" && parts[1] != "" {
			return parts[0], parts[1], true
		}
	}

	return "", "", false
}

// scanForLesson lists the top-level folders of the materials bucket and
// checks each one for a lesson_<N> directory holding an image. The
// mapping from course to storage folder is not reliably recorded at
// upload time, so the scan walks every folder.
func (r *AssetResolver) scanForLesson(ctx context.Context, lesson models.LessonContext) (string, bool) {
	if lesson.Order < 1 {
		return "", false
	}
	slug := fmt.Sprintf("lesson_%d", lesson.Order)

	folders, err := r.store.List(ctx, r.materialsBucket, "")
	if err != nil {
		r.logger.Debug("materials root listing failed", zap.Error(err))
		return "", false
	}

	for _, folder := range folders {
		if ctx.Err() != nil {
			return "", false
		}
		name := strings.Trim(folder.Name, "/")
		if name == "" {
			continue
		}

		prefix := name + "/" + slug
		entries, err := r.store.List(ctx, r.materialsBucket, prefix)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if !storage.IsImagePath(entry.Name) {
				continue
			}
			path := prefix + "/" + entry.Name
			if resolved, ok := r.locate(ctx, r.materialsBucket, path); ok {
				return resolved, true
			}
		}
	}

	return "", false
}

// guessPaths probes a fixed candidate set of bucket/path combinations
// built from whatever hints exist. This is the last resort before
// giving up; cost is bounded by the candidate lists and the per-probe
// timeout.
func (r *AssetResolver) guessPaths(ctx context.Context, material models.Material, lesson models.LessonContext) (string, bool) {
	paths := candidatePaths(material, lesson)
	if len(paths) == 0 {
		return "", false
	}

	for _, bucket := range candidateBuckets {
		for _, path := range paths {
			if ctx.Err() != nil {
				return "", false
			}
			if resolved, ok := r.locate(ctx, bucket, path); ok {
				return resolved, true
			}
		}
	}

	return "", false
}

// candidatePaths builds the ordered path permutations for the
// brute-force search from metadata and course/lesson identity
func candidatePaths(material models.Material, lesson models.LessonContext) []string {
	var stems []string

	if f := strings.TrimSpace(material.Metadata.Filename); f != "" {
		stems = append(stems, strings.TrimSuffix(f, extension(f)))
	}
	if raw := strings.TrimSpace(material.RawURL); raw != "" && !strings.Contains(raw, "://") {
		stems = append(stems, strings.TrimSuffix(raw, extension(raw)))
	}
	if lesson.Order >= 1 {
		slug := fmt.Sprintf("lesson_%d", lesson.Order)
		stems = append(stems, slug)
		if lesson.CourseSlug != "" {
			stems = append(stems, lesson.CourseSlug+"/"+slug)
		}
		if lesson.CourseID > 0 {
			stems = append(stems, fmt.Sprintf("course_%d/%s", lesson.CourseID, slug))
		}
	}

	seen := make(map[string]bool, len(stems)*len(candidateExtensions))
	var paths []string
	for _, stem := range stems {
		stem = strings.Trim(stem, "/")
		if stem == "" {
			continue
		}
		for _, ext := range candidateExtensions {
			p := stem + ext
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		}
	}
	return paths
}

func extension(p string) string {
	if idx := strings.LastIndex(p, "."); idx >= 0 && idx > strings.LastIndex(p, "/") {
		return p[idx:]
	}
	return ""
}
