package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/UnknownOlympus/dispatch/internal/assignment"
	"github.com/UnknownOlympus/dispatch/internal/metrics"
	"github.com/UnknownOlympus/dispatch/internal/models"
	"github.com/UnknownOlympus/dispatch/internal/parser"
	"github.com/google/uuid"
)

// Source supplies the raw driver names and address lines of a run.
type Source interface {
	FetchDriverNames(ctx context.Context) ([]string, error)
	FetchAddressLines(ctx context.Context) ([]string, error)
}

// Sink persists a finished run.
type Sink interface {
	SaveResult(ctx context.Context, runID uuid.UUID, strategy string, result models.Result) error
}

// Exporter writes a finished run to its destination.
type Exporter interface {
	Export(ctx context.Context, result models.Result) error
}

const (
	statusSuccess = "success"
	statusFailure = "failure"
)

// AssignmentService runs the assignment pipeline: load inputs, parse them,
// pair drivers with addresses, then export and optionally persist the result.
type AssignmentService struct {
	log          *slog.Logger         // Logger for logging service activities
	source       Source               // Source of driver names and address lines
	parser       parser.AddressParser // Parser turning address lines into addresses
	strategy     assignment.Strategy  // Strategy pairing drivers with addresses
	strategyName string               // Name of the strategy for metrics labeling
	exporter     Exporter             // Exporter writing the result document
	sink         Sink                 // Optional sink persisting the result, nil to skip
	metrics      *metrics.Metrics     // Metrics for tracking service performance
	numWorkers   int                  // Number of concurrent workers parsing addresses
}

// NewAssignmentService creates a new instance of AssignmentService.
// A nil sink disables persistence. numWorkers below one is treated as one.
func NewAssignmentService(
	log *slog.Logger,
	source Source,
	addressParser parser.AddressParser,
	strategy assignment.Strategy,
	strategyName string,
	exporter Exporter,
	sink Sink,
	metrics *metrics.Metrics,
	numWorkers int,
) *AssignmentService {
	return &AssignmentService{
		log:          log,
		source:       source,
		parser:       addressParser,
		strategy:     strategy,
		strategyName: strategyName,
		exporter:     exporter,
		sink:         sink,
		metrics:      metrics,
		numWorkers:   max(numWorkers, 1),
	}
}

// Run executes one assignment run and returns its result.
func (as *AssignmentService) Run(ctx context.Context) (models.Result, error) {
	result, err := as.run(ctx)
	if err != nil {
		as.metrics.Runs.WithLabelValues(as.strategyName, statusFailure).Inc()
		return models.Result{}, err
	}

	as.metrics.Runs.WithLabelValues(as.strategyName, statusSuccess).Inc()

	return result, nil
}

func (as *AssignmentService) run(ctx context.Context) (models.Result, error) {
	names, err := as.source.FetchDriverNames(ctx)
	if err != nil {
		return models.Result{}, fmt.Errorf("failed to load drivers: %w", err)
	}
	lines, err := as.source.FetchAddressLines(ctx)
	if err != nil {
		return models.Result{}, fmt.Errorf("failed to load addresses: %w", err)
	}

	drivers := parser.ParseDrivers(names)
	addresses := as.parseAddresses(ctx, lines)

	as.log.InfoContext(ctx, "Inputs loaded",
		"drivers", len(drivers), "addresses", len(addresses), "strategy", as.strategyName)

	startTime := time.Now()
	result := as.strategy.Assign(drivers, addresses)
	as.metrics.RunSeconds.WithLabelValues(as.strategyName).Observe(time.Since(startTime).Seconds())
	as.observe(result)

	if len(result.Matches) == 0 {
		as.log.WarnContext(ctx, "No assignments made due to bad or no data")
	} else {
		as.log.InfoContext(ctx, "Assignments made",
			"matches", len(result.Matches),
			"total_score", result.TotalScore,
			"leftover_drivers", len(result.LeftoverDrivers),
			"leftover_addresses", len(result.LeftoverAddresses),
		)
	}

	if err = as.exporter.Export(ctx, result); err != nil {
		return models.Result{}, fmt.Errorf("failed to export result: %w", err)
	}

	if as.sink != nil {
		runID := uuid.New()
		if err = as.sink.SaveResult(ctx, runID, as.strategyName, result); err != nil {
			return models.Result{}, fmt.Errorf("failed to save result: %w", err)
		}
		as.log.InfoContext(ctx, "Result persisted", "run", runID)
	}

	return result, nil
}

func (as *AssignmentService) observe(result models.Result) {
	as.metrics.Matches.Add(float64(len(result.Matches)))
	as.metrics.TotalScore.Set(result.TotalScore)
	as.metrics.Leftovers.WithLabelValues("driver").Set(float64(len(result.LeftoverDrivers)))
	as.metrics.Leftovers.WithLabelValues("address").Set(float64(len(result.LeftoverAddresses)))
	for _, m := range result.Matches {
		as.metrics.MatchScore.Observe(m.Score)
	}
}

type addressJob struct {
	idx  int
	line string
}

// parseAddresses parses the non-blank lines with a pool of workers. The result keeps input order.
func (as *AssignmentService) parseAddresses(ctx context.Context, lines []string) []models.Address {
	lines = slices.DeleteFunc(slices.Clone(lines), func(line string) bool {
		return strings.TrimSpace(line) == ""
	})
	addresses := make([]models.Address, len(lines))
	if len(lines) == 0 {
		return addresses
	}

	workers := min(as.numWorkers, len(lines))
	as.log.DebugContext(ctx, "Parsing addresses", "jobs", len(lines), "num_workers", workers)

	jobs := make(chan addressJob, len(lines))
	var wgr sync.WaitGroup

	for i := 1; i <= workers; i++ {
		wgr.Add(1)
		go as.worker(ctx, i, &wgr, jobs, addresses)
	}

	for idx, line := range lines {
		jobs <- addressJob{idx: idx, line: line}
	}
	close(jobs)

	wgr.Wait()

	return addresses
}

// worker parses lines from jobs into their slot of out.
func (as *AssignmentService) worker(
	ctx context.Context,
	idx int,
	wg *sync.WaitGroup,
	jobs <-chan addressJob,
	out []models.Address,
) {
	defer wg.Done()
	for job := range jobs {
		as.metrics.ActiveWorkers.Inc()
		as.log.DebugContext(ctx, "Parsing address", "worker", idx, "line", job.idx)

		out[job.idx] = as.parser.ParseAddress(ctx, job.line)

		as.metrics.ActiveWorkers.Dec()
	}
}
