package roster

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.ntppool.org/common/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultRetries = 3

var tracer = otel.Tracer("go.ntppool.org/ticketdraw/roster")

// Adder receives the records of a roster file as they are read
type Adder interface {
	AddParticipant(name string, weight int) error
}

// Store is a roster file on disk
type Store struct {
	Path      string
	Delimiter rune // DefaultDelimiter when zero
	Retries   uint // total save attempts, 3 when zero

	// RetryInterval is the first wait between save attempts
	RetryInterval time.Duration
}

func (s *Store) delimiter() rune {
	if s.Delimiter == 0 {
		return DefaultDelimiter
	}
	return s.Delimiter
}

// Load reads the roster file and hands every record to dst. It returns
// the number of records dst accepted; on error that is how far the load
// got before stopping.
func (s *Store) Load(ctx context.Context, dst Adder) (int, error) {
	log := logger.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "roster.Load",
		trace.WithAttributes(attribute.String("roster.path", s.Path)),
	)
	defer span.End()

	loaded := 0
	fail := func(err error) (int, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		log.ErrorContext(ctx, "could not load roster", "path", s.Path, "loaded", loaded, "err", err)
		return loaded, &LoadError{Path: s.Path, Loaded: loaded, Err: err}
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return fail(err)
	}
	defer f.Close()

	err = Decode(f, s.delimiter(), func(line int, rec Record) error {
		if err := dst.AddParticipant(rec.Name, rec.Weight); err != nil {
			return err
		}
		loaded++
		return nil
	})
	if err != nil {
		return fail(err)
	}

	span.SetAttributes(attribute.Int("roster.records", loaded))
	log.DebugContext(ctx, "loaded roster", "path", s.Path, "records", loaded)

	return loaded, nil
}

// Save replaces the roster file with recs. The new contents are written
// to a temporary file that is renamed over the old one, so a failed save
// leaves the previous file intact.
func (s *Store) Save(ctx context.Context, recs []Record) error {
	log := logger.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "roster.Save",
		trace.WithAttributes(
			attribute.String("roster.path", s.Path),
			attribute.Int("roster.records", len(recs)),
		),
	)
	defer span.End()

	fail := func(err error) error {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save failed")
		log.ErrorContext(ctx, "could not save roster", "path", s.Path, "err", err)
		return &PersistError{Path: s.Path, Err: err}
	}

	var buf bytes.Buffer
	if err := Encode(&buf, recs, s.delimiter()); err != nil {
		return fail(err)
	}

	mode := fs.FileMode(0o644)
	if fi, err := os.Stat(s.Path); err == nil {
		mode = fi.Mode().Perm()
	}

	retries := s.Retries
	if retries == 0 {
		retries = defaultRetries
	}

	expback := backoff.NewExponentialBackOff()
	expback.InitialInterval = 100 * time.Millisecond
	if s.RetryInterval > 0 {
		expback.InitialInterval = s.RetryInterval
	}
	expback.MaxInterval = 2 * time.Second

	attempt := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		err := replaceFile(s.Path, buf.Bytes(), mode)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
				return struct{}{}, backoff.Permanent(err)
			}
			log.WarnContext(ctx, "roster save failed, retrying", "path", s.Path, "attempt", attempt, "err", err)
			return struct{}{}, err
		}
		return struct{}{}, nil
	},
		backoff.WithBackOff(expback),
		backoff.WithMaxTries(retries),
	)
	if err != nil {
		return fail(err)
	}

	log.DebugContext(ctx, "saved roster", "path", s.Path, "records", len(recs), "bytes", buf.Len())

	return nil
}

func replaceFile(path string, b []byte, mode fs.FileMode) (err error) {
	tmpPath := path + ".tmp"

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer func() {
		f.Close()
		if err != nil {
			os.Remove(tmpPath)
		}
	}()

	n, err := f.Write(b)
	if err == nil && n < len(b) {
		err = io.ErrShortWrite
	}
	if err1 := f.Close(); err == nil {
		err = err1
	}
	if err != nil {
		return err
	}

	// OpenFile applies the umask
	err = os.Chmod(tmpPath, mode)
	if err != nil {
		return err
	}

	return os.Rename(tmpPath, path)
}
