package storage

import (
	"context"
	"io"
	"log"
	"net/textproto"
	"time"

	"github.com/jlaffaye/ftp"
	"github.com/pkg/errors"

	"virtualab/apperror"
	"virtualab/config"
)

// FTPStore opens a fresh connection for every operation, logs in with the
// bucket's account and quits afterwards. Failures are not retried.
type FTPStore struct {
	host     string
	password string
	timeout  time.Duration
	logins   map[Bucket]string
}

func NewFTPStore(cfg *config.Config) *FTPStore {
	return &FTPStore{
		host:     cfg.FTPHost,
		password: cfg.FTPPass,
		timeout:  time.Duration(cfg.FTPTimeout) * time.Second,
		logins: map[Bucket]string{
			BucketTeacher:        cfg.FTPTeacher,
			BucketArticle:        cfg.FTPArticle,
			BucketMaterial:       cfg.FTPUser,
			BucketProfilePicture: cfg.FTPPfp,
		},
	}
}

func (s *FTPStore) connect(ctx context.Context, bucket Bucket) (*ftp.ServerConn, error) {
	user, ok := s.logins[bucket]
	if !ok {
		return nil, apperror.Internal("Unknown storage bucket!", errors.Errorf("bucket %q has no login", bucket))
	}

	conn, err := ftp.Dial(s.host, ftp.DialWithContext(ctx), ftp.DialWithTimeout(s.timeout))
	if err != nil {
		log.Printf("[FTP] dial %s failed: %v", s.host, err)
		return nil, apperror.Transport("File server is unreachable!", errors.Wrapf(err, "dial %s", s.host))
	}

	if err := conn.Login(user, s.password); err != nil {
		_ = conn.Quit()
		log.Printf("[FTP] login for bucket %s failed: %v", bucket, err)
		return nil, apperror.Transport("File server refused the login!", errors.Wrapf(err, "login %s", bucket))
	}
	return conn, nil
}

func (s *FTPStore) Upload(ctx context.Context, bucket Bucket, name string, r io.Reader) error {
	conn, err := s.connect(ctx, bucket)
	if err != nil {
		return err
	}
	defer conn.Quit()

	if err := conn.Stor(name, r); err != nil {
		return apperror.Transport("Failed to upload file!", errors.Wrapf(err, "stor %s/%s", bucket, name))
	}
	return nil
}

func (s *FTPStore) Download(ctx context.Context, bucket Bucket, name string) ([]byte, error) {
	conn, err := s.connect(ctx, bucket)
	if err != nil {
		return nil, err
	}
	defer conn.Quit()

	resp, err := conn.Retr(name)
	if err != nil {
		if isFileUnavailable(err) {
			return nil, apperror.NotFound("File not found!")
		}
		return nil, apperror.Transport("Failed to download file!", errors.Wrapf(err, "retr %s/%s", bucket, name))
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, apperror.Transport("Failed to download file!", errors.Wrapf(err, "read %s/%s", bucket, name))
	}
	return data, nil
}

func (s *FTPStore) Delete(ctx context.Context, bucket Bucket, name string) error {
	conn, err := s.connect(ctx, bucket)
	if err != nil {
		return err
	}
	defer conn.Quit()

	if err := conn.Delete(name); err != nil {
		if isFileUnavailable(err) {
			return apperror.NotFound("File not found!")
		}
		return apperror.Transport("Failed to delete file!", errors.Wrapf(err, "dele %s/%s", bucket, name))
	}
	return nil
}

// isFileUnavailable reports a 550 reply, which servers send for missing files.
func isFileUnavailable(err error) bool {
	var protoErr *textproto.Error
	return errors.As(err, &protoErr) && protoErr.Code == ftp.StatusFileUnavailable
}
