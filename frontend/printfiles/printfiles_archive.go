package printfiles

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"runtime"
	"strings"

	"github.com/klauspost/compress/zip"
	"golang.org/x/sync/errgroup"
)

// Generator renders wall documents on a bounded worker pool, one wall per
// task, and packages the results in input order.
type Generator struct {
	workers int
}

// NewGenerator returns a generator with at most workers concurrent renders.
// Zero or less uses one worker per CPU.
func NewGenerator(workers int) *Generator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Generator{workers: workers}
}

type wallOutcome struct {
	doc      Document
	ok       bool
	failures []WallFailure
}

// Run renders every design and bundles the documents into one ZIP archive.
//
// Per-wall failures are logged and reported in the result with status
// partial. A run with no walls, or where no wall rendered, is failed and
// returns an error; an empty archive is never produced. Cancelling ctx stops
// walls that have not started yet.
func (g *Generator) Run(ctx context.Context, designs []WallDesign, pt PrintType) (RunResult, error) {
	result := RunResult{Status: StatusFailed, PrintType: pt}
	if len(designs) == 0 {
		return result, ErrNoWalls
	}

	outcomes := make([]wallOutcome, len(designs))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for i := range designs {
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			d := designs[i]
			doc, failures, err := RenderWall(d, pt)
			if err != nil {
				failures = append(failures, WallFailure{WallID: d.WallID, Label: d.Label, Stage: StageRender, Err: err.Error()})
			}
			outcomes[i] = wallOutcome{doc: doc, ok: err == nil, failures: failures}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return result, err
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	names := make(map[string]int)
	for _, o := range outcomes {
		for _, f := range o.failures {
			slog.Warn("printfiles: wall failed",
				slog.String("wall_id", f.WallID),
				slog.String("wall_label", f.Label),
				slog.String("stage", f.Stage),
				slog.String("err", f.Err))
		}
		result.Failures = append(result.Failures, o.failures...)
		if !o.ok {
			continue
		}
		doc := o.doc
		doc.Name = uniqueName(names, doc.Name)
		result.Documents = append(result.Documents, doc)
	}

	if len(result.Documents) == 0 {
		return result, ErrNothingRendered
	}

	archive, err := BuildArchive(result.Documents)
	if err != nil {
		return result, err
	}
	result.Archive = archive
	result.Status = StatusSucceeded
	if len(result.Failures) > 0 {
		result.Status = StatusPartial
	}
	return result, nil
}

// BuildArchive writes the documents into a ZIP in the given order with
// fixed timestamps.
func BuildArchive(docs []Document) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, doc := range docs {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     doc.Name,
			Method:   zip.Deflate,
			Modified: documentDate,
		})
		if err != nil {
			return nil, fmt.Errorf("archive entry %s: %w", doc.Name, err)
		}
		if _, err := w.Write(doc.Bytes); err != nil {
			return nil, fmt.Errorf("archive write %s: %w", doc.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	return buf.Bytes(), nil
}

// ArchiveName is the download name for a run's ZIP.
func ArchiveName(category WallCategory, pt PrintType) string {
	return fmt.Sprintf("%s_%s_PDF.zip", category.prefix(), pt.TradeName())
}

var (
	whitespace  = regexp.MustCompile(`\s+`)
	pathUnsafe  = strings.NewReplacer("/", "-", "\\", "-", ":", "-")
	defaultName = "Vagg"
)

// documentName is <Prefix>_<Label>_<W>x<H>mm.pdf with whitespace runs in
// the label replaced by underscores.
func documentName(d WallDesign) string {
	label := strings.TrimSpace(d.Label)
	if label == "" {
		label = d.WallID
	}
	if label == "" {
		label = defaultName
	}
	label = pathUnsafe.Replace(whitespace.ReplaceAllString(label, "_"))
	return fmt.Sprintf("%s_%s_%dx%dmm.pdf", d.Category.prefix(), label, d.WidthMM, d.HeightMM)
}

func uniqueName(seen map[string]int, name string) string {
	seen[name]++
	n := seen[name]
	if n == 1 {
		return name
	}
	base := strings.TrimSuffix(name, ".pdf")
	return fmt.Sprintf("%s_%d.pdf", base, n)
}
