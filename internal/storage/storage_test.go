package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKey(t *testing.T) {
	tests := []struct {
		name        string
		prefix      string
		original    string
		contentType string
		wantPattern string
	}{
		{"keeps extension", "", "beach.PNG", "", `^\d+-[0-9a-f-]{36}\.png$`},
		{"profile prefix", ProfilePicPrefix, "me.jpeg", "", `^profile_pics/\d+-[0-9a-f-]{36}\.jpg$`},
		{"from content type", "", "download", "image/webp", `^\d+-[0-9a-f-]{36}\.webp$`},
		{"default", "", "", "", `^\d+-[0-9a-f-]{36}\.jpg$`},
		{"html name with image type", "", "evil.html", "image/png", `^\d+-[0-9a-f-]{36}\.png$`},
		{"svg is not kept", "", "logo.svg", "", `^\d+-[0-9a-f-]{36}\.jpg$`},
		{"script name no type", "", "x.js", "text/javascript", `^\d+-[0-9a-f-]{36}\.jpg$`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewKey(tt.prefix, tt.original, tt.contentType)
			assert.Regexp(t, regexp.MustCompile(tt.wantPattern), key)
		})
	}

	assert.NotEqual(t, NewKey("", "a.jpg", ""), NewKey("", "a.jpg", ""))
}

func TestPublicPath(t *testing.T) {
	assert.Equal(t, "/uploads/profile_pics/a.png", PublicPath("", "profile_pics/a.png"))
	assert.Equal(t, "/uploads/a.png", PublicPath("/uploads/", "a.png"))
	assert.Equal(t, "https://cdn.example.com/photos/a.png", PublicPath("https://cdn.example.com/photos", "/a.png"))
}

func TestCleanKey(t *testing.T) {
	tests := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{key: "a.jpg", want: "a.jpg"},
		{key: "profile_pics/a.jpg", want: "profile_pics/a.jpg"},
		{key: "./a.jpg", want: "a.jpg"},
		{key: "../etc/passwd", wantErr: true},
		{key: "profile_pics/../../x", wantErr: true},
		{key: "/abs.jpg", wantErr: true},
		{key: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := cleanKey(tt.key)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiskStore_SaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(dir, ProfilePicPrefix))

	ctx := context.Background()
	key, err := store.Save(ctx, "profile_pics/me.png", strings.NewReader("png-bytes"), 9, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "profile_pics/me.png", key)

	data, err := os.ReadFile(filepath.Join(dir, "profile_pics", "me.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Delete(ctx, key))
	assert.NoFileExists(t, filepath.Join(dir, "profile_pics", "me.png"))
	assert.NoError(t, store.Delete(ctx, key), "deleting a missing file is not an error")
}

func TestDiskStore_RejectsTraversal(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "../escape.jpg", strings.NewReader("x"), 1, "image/jpeg")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestDiskStore_RemovesPartialFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "broken.jpg", failingReader{}, -1, "image/jpeg")
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "broken.jpg"))
}

type fakeS3 struct {
	puts    []*s3.PutObjectInput
	body    string
	deletes []string
	err     error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deletes = append(f.deletes, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Store(t *testing.T) {
	ctx := context.Background()
	client := &fakeS3{}
	store := NewS3StoreWithClient(client, "photos")

	key, err := store.Save(ctx, "a.jpg", strings.NewReader("jpeg"), 4, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", key)
	require.Len(t, client.puts, 1)
	assert.Equal(t, "photos", aws.ToString(client.puts[0].Bucket))
	assert.Equal(t, "image/jpeg", aws.ToString(client.puts[0].ContentType))
	assert.Equal(t, int64(4), aws.ToInt64(client.puts[0].ContentLength))
	assert.Equal(t, "jpeg", client.body)

	require.NoError(t, store.Delete(ctx, "a.jpg"))
	assert.Equal(t, []string{"a.jpg"}, client.deletes)

	client.err = errors.New("access denied")
	_, err = store.Save(ctx, "b.jpg", strings.NewReader("x"), 1, "image/jpeg")
	assert.ErrorContains(t, err, "access denied")
}
