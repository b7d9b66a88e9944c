package checkpoint

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/gofrs/flock"
	apperrors "shotpair/pkg/errors"
	"shotpair/pkg/logger"
	"shotpair/pkg/models"
)

// recordFields is the column count of a record log row:
// index,leftURL,rightURL,outputFileName,leftStatus,rightStatus
const recordFields = 6

// ErrLocked is returned by Open when another run holds the record log
var ErrLocked = errors.New("record log is locked by another run")

// Store tracks completed pairs through the append-only record log
type Store struct {
	path   string
	lock   *flock.Flock
	logger logger.Logger

	mu   sync.Mutex
	file *os.File
	done map[string]struct{}
}

// Open locks the record log at path and loads the set of completed output
// file names. A missing log is an empty state.
func Open(path string, log logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.GetLogger()
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, apperrors.ProgressStore("lock "+path, err)
	}
	if !locked {
		return nil, apperrors.ProgressStore("lock "+path, ErrLocked)
	}

	s := &Store{
		path:   path,
		lock:   lock,
		logger: log,
		done:   make(map[string]struct{}),
	}

	if err := s.load(); err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	log.InfoWithFields("Record log loaded", map[string]interface{}{
		"path":      path,
		"completed": len(s.done),
	})
	return s, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return apperrors.ProgressStore("read "+s.path, err)
	}

	if n := len(data); n > 0 && data[n-1] != '\n' {
		keep := bytes.LastIndexByte(data, '\n') + 1
		s.logger.WarnWithFields("Truncating incomplete final record", map[string]interface{}{
			"path":    s.path,
			"dropped": string(data[keep:]),
		})
		if err := os.Truncate(s.path, int64(keep)); err != nil {
			return apperrors.ProgressStore("truncate "+s.path, err)
		}
		data = data[:keep]
	}

	records, err := parse(bytes.NewReader(data))
	if err != nil {
		return apperrors.ProgressStore("parse "+s.path, err)
	}
	for _, r := range records {
		s.done[r.OutputFileName] = struct{}{}
	}
	return nil
}

// parse decodes record log rows. Rows of any other shape are rejected.
func parse(r io.Reader) ([]models.OutputRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var records []models.OutputRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		if len(row) != recordFields {
			return nil, fmt.Errorf("line %d: expected %d columns, found %d", line, recordFields, len(row))
		}

		var rec models.OutputRecord
		ints := []*int{&rec.Index, &rec.LeftStatus, &rec.RightStatus}
		for i, col := range []int{0, 4, 5} {
			n, err := strconv.Atoi(row[col])
			if err != nil {
				return nil, fmt.Errorf("line %d: column %d is not a number: %q", line, col+1, row[col])
			}
			*ints[i] = n
		}
		rec.LeftURL = row[1]
		rec.RightURL = row[2]
		rec.OutputFileName = row[3]
		if rec.OutputFileName == "" {
			return nil, fmt.Errorf("line %d: output file name is empty", line)
		}
		records = append(records, rec)
	}
}

// IsDone reports whether fileName was recorded as completed
func (s *Store) IsDone(fileName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.done[fileName]
	return ok
}

// Completed returns the number of distinct completed output files
func (s *Store) Completed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.done)
}

// Append durably records rec. The row is written with a single write on an
// O_APPEND descriptor and synced before Append returns.
func (s *Store) Append(rec models.OutputRecord) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{
		strconv.Itoa(rec.Index),
		rec.LeftURL,
		rec.RightURL,
		rec.OutputFileName,
		strconv.Itoa(rec.LeftStatus),
		strconv.Itoa(rec.RightStatus),
	}); err != nil {
		return apperrors.ProgressStore("encode record", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return apperrors.ProgressStore("encode record", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return apperrors.ProgressStore("open "+s.path, err)
		}
		s.file = f
	}

	if _, err := s.file.Write(buf.Bytes()); err != nil {
		return apperrors.ProgressStore("append "+s.path, err)
	}
	if err := s.file.Sync(); err != nil {
		return apperrors.ProgressStore("sync "+s.path, err)
	}

	s.done[rec.OutputFileName] = struct{}{}
	return nil
}

// Close releases the record log and its lock
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	if s.file != nil {
		errs = append(errs, s.file.Close())
		s.file = nil
	}
	errs = append(errs, s.lock.Unlock())
	return errors.Join(errs...)
}
