package monitor

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/rileyhilliard/sysdash/internal/logger"
)

const (
	reportPrefix     = "system_report_"
	defaultReportExt = "pdf"
	sniffLen         = 3072

	// ReportTransportMessage is shown when the report request got no response.
	ReportTransportMessage = "Report generation failed. Is the endpoint reachable?"
)

var timestampSanitizer = strings.NewReplacer(":", "", "-", "")

// ReportSource fetches the generated report. A server-side failure must come
// back as an ErrReport error carrying the server's message.
type ReportSource interface {
	FetchReport(ctx context.Context) (io.ReadCloser, error)
}

// Affordance is the UI control tied to report generation.
type Affordance interface {
	SetBusy(busy bool)
}

// BusyFlag is an Affordance the view can poll from the update loop.
type BusyFlag struct {
	busy atomic.Bool
}

// SetBusy implements Affordance.
func (f *BusyFlag) SetBusy(busy bool) { f.busy.Store(busy) }

// Busy reports the current state.
func (f *BusyFlag) Busy() bool { return f.busy.Load() }

// ReportResult is the outcome of one Generate call.
type ReportResult struct {
	Path    string
	Size    int64
	Message string
	Err     error
}

// OK reports whether the artifact was saved.
func (r ReportResult) OK() bool {
	return r.Err == nil
}

// ReportRequester downloads report artifacts into a directory.
type ReportRequester struct {
	source     ReportSource
	dir        string
	affordance Affordance
	now        func() time.Time
	log        logger.Logger
}

// NewReportRequester creates a requester saving into dir. affordance may be nil.
func NewReportRequester(source ReportSource, dir string, affordance Affordance) *ReportRequester {
	if dir == "" {
		dir = "."
	}
	return &ReportRequester{
		source:     source,
		dir:        dir,
		affordance: affordance,
		now:        time.Now,
		log:        logger.NewEnvLogger("[report]"),
	}
}

// SetClock replaces the clock used for file names.
func (r *ReportRequester) SetClock(now func() time.Time) { r.now = now }

// SetLogger replaces the logger.
func (r *ReportRequester) SetLogger(l logger.Logger) { r.log = l }

// Generate requests a report and saves it. The affordance is busy for the
// duration of the call and idle again on every return path.
// Concurrent calls are not blocked here.
func (r *ReportRequester) Generate(ctx context.Context) ReportResult {
	if r.affordance != nil {
		r.affordance.SetBusy(true)
		defer r.affordance.SetBusy(false)
	}

	requested := r.now()
	body, err := r.source.FetchReport(ctx)
	if err != nil {
		return r.failed(err)
	}
	defer body.Close()

	path, size, err := r.save(body, requested)
	if err != nil {
		return r.failed(err)
	}

	r.log.Info("saved report %s (%d bytes)", path, size)
	return ReportResult{
		Path:    path,
		Size:    size,
		Message: fmt.Sprintf("Report saved to %s (%s)", path, humanize.Bytes(uint64(size))),
	}
}

func (r *ReportRequester) failed(err error) ReportResult {
	r.log.Error("report: %v", errors.Summarize(err))

	var e *errors.Error
	if stderrors.As(err, &e) && (e.Code == errors.ErrReport || e.Code == errors.ErrConfig) {
		return ReportResult{Message: "Report failed: " + e.Message, Err: err}
	}
	return ReportResult{Message: ReportTransportMessage, Err: err}
}

// save streams body to a temp file in the report directory and renames it into
// place once complete. A body that fails mid-stream is a transport error, not a
// filesystem one.
func (r *ReportRequester) save(body io.Reader, requested time.Time) (string, int64, error) {
	src := &sourceReader{r: body}
	br := bufio.NewReaderSize(src, sniffLen)
	head, _ := br.Peek(sniffLen)
	name := ReportFileName(requested, sniffExtension(head))

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", 0, saveError(err)
	}
	tmp, err := os.CreateTemp(r.dir, "."+reportPrefix+"*.part")
	if err != nil {
		return "", 0, saveError(err)
	}
	tmpName := tmp.Name()

	size, err := io.Copy(tmp, br)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpName)
		if src.err != nil {
			return "", 0, downloadError(src.err)
		}
		return "", 0, saveError(err)
	}

	path := filepath.Join(r.dir, name)
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", 0, saveError(err)
	}
	return path, size, nil
}

// sourceReader remembers the last read error other than io.EOF.
type sourceReader struct {
	r   io.Reader
	err error
}

func (s *sourceReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && err != io.EOF {
		s.err = err
	}
	return n, err
}

func downloadError(err error) error {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return err
	}
	return errors.Fetch(err, "the report")
}

func saveError(err error) error {
	return errors.WrapWithCode(err, errors.ErrConfig,
		"Couldn't save the report",
		"Check that report.dir exists and is writable")
}

// ReportFileName builds system_report_<timestamp>.<ext> from the request time
// in UTC, with ':' and '-' removed from the timestamp.
func ReportFileName(requested time.Time, ext string) string {
	stamp := timestampSanitizer.Replace(requested.UTC().Format("2006-01-02T15:04:05"))
	return reportPrefix + stamp + "." + ext
}

// sniffExtension guesses the artifact's extension from its leading bytes.
func sniffExtension(head []byte) string {
	if len(head) == 0 {
		return defaultReportExt
	}
	mt := mimetype.Detect(head)
	ext := strings.TrimPrefix(mt.Extension(), ".")
	if ext == "" || mt.Is("application/octet-stream") {
		return defaultReportExt
	}
	return ext
}
