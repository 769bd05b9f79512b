package store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-image-keeper/internal/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObject struct {
	data        []byte
	contentType string
	modified    time.Time
}

// fakeS3 is an in-memory s3API. List results are paged by pageSize.
type fakeS3 struct {
	mu       sync.Mutex
	objects  map[string]fakeObject
	pageSize int
	putErr   error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string]fakeObject), pageSize: 1000}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Key)] = fakeObject{data: data, contentType: aws.ToString(in.ContentType), modified: time.Now()}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	obj, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "NoSuchKey", Message: "not found"}
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(obj.data)),
		ContentLength: aws.Int64(int64(len(obj.data))),
		ContentType:   aws.String(obj.contentType),
		LastModified:  aws.Time(obj.modified),
	}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	keys := make([]string, 0, len(f.objects))
	for k := range f.objects {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			keys = append(keys, k)
		}
	}
	// deterministic paging
	for i := range keys {
		for j := i + 1; j < len(keys); j++ {
			if keys[j] < keys[i] {
				keys[i], keys[j] = keys[j], keys[i]
			}
		}
	}

	start := 0
	if token := aws.ToString(in.ContinuationToken); token != "" {
		for i, k := range keys {
			if k == token {
				start = i
				break
			}
		}
	}
	end := min(start+f.pageSize, len(keys))

	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(end < len(keys))}
	if end < len(keys) {
		out.NextContinuationToken = aws.String(keys[end])
	}
	for _, k := range keys[start:end] {
		obj := f.objects[k]
		out.Contents = append(out.Contents, types.Object{
			Key:          aws.String(k),
			Size:         aws.Int64(int64(len(obj.data))),
			LastModified: aws.Time(obj.modified),
		})
	}
	return out, nil
}

func TestS3FileStorage_SaveAndOpen(t *testing.T) {
	fake := newFakeS3()
	s := newS3FileStorage(fake, "images", "uploads/", logger.Nop())
	ctx := context.Background()

	stored, err := s.Save(ctx, "photo.PNG", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "photo.PNG", stored.Name)
	assert.Equal(t, int64(9), stored.Size)
	assert.Equal(t, "image/png", stored.ContentType)
	assert.Contains(t, fake.objects, "uploads/photo.PNG")

	obj, err := s.Open(ctx, "photo.PNG")
	require.NoError(t, err)
	defer obj.Body.Close()

	data, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
	assert.Equal(t, "image/png", obj.ContentType)
}

func TestS3FileStorage_SaveNonSeekable(t *testing.T) {
	fake := newFakeS3()
	s := newS3FileStorage(fake, "images", "", logger.Nop())

	stored, err := s.Save(context.Background(), "a.jpg", io.MultiReader(strings.NewReader("ab"), strings.NewReader("cd")))
	require.NoError(t, err)
	assert.Equal(t, int64(4), stored.Size)
	assert.Equal(t, []byte("abcd"), fake.objects["a.jpg"].data)
}

func TestS3FileStorage_SaveError(t *testing.T) {
	fake := newFakeS3()
	fake.putErr = errors.New("access denied")
	s := newS3FileStorage(fake, "images", "", logger.Nop())

	_, err := s.Save(context.Background(), "a.jpg", strings.NewReader("x"))
	assert.Error(t, err)
	assert.Empty(t, fake.objects)
}

func TestS3FileStorage_OpenNotFound(t *testing.T) {
	s := newS3FileStorage(newFakeS3(), "images", "", logger.Nop())

	for _, name := range []string{"missing.png", "../x.png", "a/b.png"} {
		_, err := s.Open(context.Background(), name)
		assert.ErrorIs(t, err, ErrFileNotFound, name)
	}
}

func TestS3FileStorage_ListPaginatesAndSkipsNested(t *testing.T) {
	fake := newFakeS3()
	fake.pageSize = 2
	s := newS3FileStorage(fake, "images", "uploads/", logger.Nop())
	ctx := context.Background()

	for _, name := range []string{"a.png", "b.jpg", "c.jpeg"} {
		_, err := s.Save(ctx, name, strings.NewReader(name))
		require.NoError(t, err)
	}
	fake.objects["uploads/nested/d.png"] = fakeObject{data: []byte("d")}
	fake.objects["other/e.png"] = fakeObject{data: []byte("e")}

	files, err := s.List(ctx)
	require.NoError(t, err)

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"a.png", "b.jpg", "c.jpeg"}, names)
}

func TestIsS3NotFound(t *testing.T) {
	assert.True(t, isS3NotFound(&types.NoSuchKey{}))
	assert.True(t, isS3NotFound(&smithy.GenericAPIError{Code: "NotFound"}))
	assert.False(t, isS3NotFound(&smithy.GenericAPIError{Code: "AccessDenied"}))
	assert.False(t, isS3NotFound(errors.New("boom")))
}
