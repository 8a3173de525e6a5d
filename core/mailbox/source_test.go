package mailbox

import (
	"context"
	"errors"
	"strings"
	"testing"

	"mailrecon/core/storage/mocks"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const mboxData = "From bob@example.com Fri Mar  1 10:00:00 2024\n" +
	"From: bob@example.com\n" +
	"Subject: first\n" +
	"\n" +
	"one\n" +
	"\n" +
	"From amy@example.com Fri Mar  1 11:00:00 2024\n" +
	"From: amy@example.com\n" +
	"Subject: second\n" +
	"\n" +
	"two\n"

func TestReadMbox(t *testing.T) {
	items := ReadMbox(strings.NewReader(mboxData), "archive.mbox", "archive.mbox")
	require.Len(t, items, 2)

	assert.Equal(t, "archive.mbox#1", items[0].ID)
	assert.Equal(t, "archive", items[0].FolderPath)
	require.NoError(t, items[0].Err)
	assert.Equal(t, "first", items[0].Record.Subject)

	assert.Equal(t, "archive.mbox#2", items[1].ID)
	assert.Equal(t, "amy@example.com", items[1].Record.SenderEmail)
}

func TestReadMbox_NotAnMbox(t *testing.T) {
	items := ReadMbox(strings.NewReader("garbage\n"), "x.mbox", "x.mbox")
	require.Len(t, items, 1)
	assert.Error(t, items[0].Err)
	assert.Nil(t, items[0].Record)
}

func TestIsMessageFile(t *testing.T) {
	assert.True(t, isMessageFile("inbox/1.eml"))
	assert.True(t, isMessageFile("inbox/1.EML"))
	assert.True(t, isMessageFile("export/Inbox/42"))
	assert.False(t, isMessageFile("notes.txt"))
	assert.False(t, isMessageFile("README"))
	assert.True(t, isMbox("all.MBOX"))
}

func TestFileSource_Load(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/mail/inbox/a.eml", []byte(plainMessage), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/mail/inbox/b.eml", []byte(""), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/mail/old.mbox", []byte(mboxData), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/mail/pst/7", []byte(multipartMessage), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/mail/notes.txt", []byte("ignore me"), 0o644))

	src := NewFileSource(fs, "/mail")
	assert.Equal(t, "/mail", src.Name())

	items, err := src.Load(context.Background())
	require.NoError(t, err)

	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	assert.Equal(t, []string{"inbox/a.eml", "inbox/b.eml", "old.mbox#1", "old.mbox#2", "pst/7"}, ids)
	assert.Equal(t, "inbox", items[0].FolderPath)
	assert.ErrorIs(t, items[1].Err, ErrEmptyMessage)
	assert.Equal(t, "Café news", items[4].Record.Subject)
}

func TestFileSource_SingleFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/tmp/one.eml", []byte(plainMessage), 0o644))

	items, err := NewFileSource(fs, "/tmp/one.eml").Load(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "one.eml", items[0].ID)

	_, err = NewFileSource(fs, "/tmp/missing").Load(context.Background())
	assert.Error(t, err)
}

func TestBucketSource_Load(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "archive").Return(true, nil)

	client.StubMessages("archive", "2024/", map[string]string{
		"2024/a.eml": plainMessage,
		"2024/b.eml": multipartMessage,
	}, "2024/b.eml", "2024/a.eml", "2024/readme.md", "2024/sub/")

	src := NewBucketSource(client, "archive", "2024/")
	assert.Equal(t, "s3://archive/2024/", src.Name())

	items, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "2024/a.eml", items[0].ID)
	assert.Equal(t, "<abc@example.com>", items[0].Record.MessageID)
	assert.Equal(t, "2024/b.eml", items[1].ID)
	client.AssertExpectations(t)
}

func TestBucketSource_Errors(t *testing.T) {
	t.Run("MissingBucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "nope").Return(false, nil)
		_, err := NewBucketSource(client, "nope", "").Load(context.Background())
		assert.ErrorContains(t, err, "does not exist")
	})

	t.Run("GetObjectFails", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "b").Return(true, nil)
		client.On("ListObjects", mock.Anything, "b", mock.Anything).Return(mocks.Objects("x.eml"))
		client.On("GetObject", mock.Anything, "b", "x.eml", mock.Anything).Return(nil, errors.New("denied"))

		_, err := NewBucketSource(client, "b", "").Load(context.Background())
		assert.ErrorContains(t, err, "denied")
	})
}

func TestOpen(t *testing.T) {
	client := new(mocks.Client)
	deps := Deps{
		Fs:      afero.NewMemMapFs(),
		Storage: client,
		Bucket:  "default-bucket",
		IMAP:    IMAPConfig{Host: "imap.example.com", Port: 993, Folder: "INBOX", TLS: true},
	}

	tests := []struct {
		location string
		name     string
		wantErr  bool
	}{
		{"s3://archive/2024/", "s3://archive/2024/", false},
		{"s3:///2024/", "s3://default-bucket/2024/", false},
		{"imap://me@mail.example.org:1993/Sent", "imap://me@mail.example.org:1993/Sent", false},
		{"imap://me@/Archive", "imap://me@imap.example.com:993/Archive", false},
		{"/var/mail/export", "/var/mail/export", false},
		{"ftp://host/file", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			src, err := Open(tt.location, deps)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedSource)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.name, src.Name())
		})
	}

	_, err := Open("s3://x/y", Deps{})
	assert.ErrorIs(t, err, ErrUnsupportedSource)
}
