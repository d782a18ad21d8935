package mine

import (
	"context"
	"fmt"
	"log"

	"github.com/Sumatoshi-tech/diffdrift/internal/diffengine"
	"github.com/Sumatoshi-tech/diffdrift/pkg/gitlib"
)

// AnalyzeRepo runs the full pipeline over one repository checkout and
// returns its records in traversal order. The run is single-threaded: each
// commit is processed to completion, both diff invocations included, before
// the next one starts.
func AnalyzeRepo(
	ctx context.Context, repoName, repoPath string, engine diffengine.Engine, opts WalkOptions,
) ([]Record, error) {
	repo, err := gitlib.OpenRepository(repoPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", repoPath, err)
	}
	defer repo.Free()

	commits, err := Walk(repo, opts)
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", repoName, err)
	}

	aggregator := &Aggregator{Engine: engine}

	var records []Record

	for _, commit := range commits {
		for _, change := range commit.Changes {
			record, ok := aggregator.RecordChange(ctx, repoName, repoPath, commit, change)
			if !ok {
				continue
			}

			records = append(records, record)
		}
	}

	log.Printf("analyze: %s: %d commits, %d records", repoName, len(commits), len(records))

	return records, nil
}
