// Command statsdemo feeds synthetic latency datasets into a collector group and
// prints the resulting median and mean per dataset. With -addr it keeps serving
// the management endpoints until interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"

	"github.com/hyp3rd/hyperstats"
	"github.com/hyp3rd/hyperstats/internal/constants"
	"github.com/hyp3rd/hyperstats/pkg/middleware"
)

type dataset struct {
	name   string
	values func(n int) []float64
}

func datasets(rng *rand.Rand, maxVal int64) []dataset {
	return []dataset{
		{name: "ascending", values: func(n int) []float64 {
			out := make([]float64, n)
			for i := range out {
				out[i] = float64(int64(i)%maxVal + 1)
			}

			return out
		}},
		{name: "descending", values: func(n int) []float64 {
			out := make([]float64, n)
			for i := range out {
				out[i] = float64(int64(n-i-1)%maxVal + 1)
			}

			return out
		}},
		{name: "random", values: func(n int) []float64 {
			out := make([]float64, n)
			for i := range out {
				out[i] = float64(rng.Int64N(maxVal) + 1)
			}

			return out
		}},
		{name: "constant", values: func(n int) []float64 {
			out := make([]float64, n)
			for i := range out {
				out[i] = 500
			}

			return out
		}},
	}
}

func main() {
	estimatorName := flag.String("estimator", constants.DefaultEstimator, "median estimator: heap, histogram or hdr")
	samples := flag.Int("n", 10000, "samples per dataset")
	workers := flag.Int("workers", 4, "ingestion workers")
	addr := flag.String("addr", "", "management HTTP address, e.g. 127.0.0.1:8080 (disabled when empty)")
	verbose := flag.Bool("v", false, "log every call on the sample service")
	flag.Parse()

	logger := log.New(os.Stderr, "statsdemo: ", log.LstdFlags)

	err := run(logger, *estimatorName, *samples, *workers, *addr, *verbose)
	if err != nil {
		logger.Fatal(err)
	}
}

func run(logger *log.Logger, estimatorName string, samples, workers int, addr string, verbose bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, err := hyperstats.NewGroup(hyperstats.WithEstimator(estimatorName))
	if err != nil {
		return err
	}

	timings, err := hyperstats.NewGroup()
	if err != nil {
		return err
	}

	ingester := newSampleIngester(group, workers, logger)

	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))

	for _, ds := range datasets(rng, constants.DefaultMaxValue) {
		for _, v := range ds.values(samples) {
			err = ingester.Record(ctx, hyperstats.Sample{Name: ds.name, Value: v})
			if err != nil {
				ingester.Close()

				return err
			}
		}
	}

	ingester.Close()

	// one collector exercised directly through the middleware chain
	single, err := hyperstats.NewSyncCollector(hyperstats.WithEstimator(estimatorName))
	if err != nil {
		return err
	}

	svc := hyperstats.ApplyMiddleware(single,
		func(next hyperstats.Service) hyperstats.Service {
			return middleware.NewStatsCollectorMiddleware(next, timings, logger)
		},
	)
	if verbose {
		svc = middleware.NewLoggingMiddleware(svc, logger)
	}

	for i := 1; i <= 100; i++ {
		err = svc.Push(ctx, float64(i))
		if err != nil {
			return err
		}
	}

	median, err := svc.Median(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("sample service: median=%v count=%d\n", median, svc.Count(ctx))

	err = printSnapshots(ctx, "datasets", group)
	if err != nil {
		return err
	}

	err = printSnapshots(ctx, "call durations (ns)", timings)
	if err != nil {
		return err
	}

	if addr == "" {
		return nil
	}

	return serve(ctx, logger, addr, group)
}

// newSampleIngester starts an ingester whose push failures are logged.
func newSampleIngester(group *hyperstats.Group, workers int, logger *log.Logger) *hyperstats.Ingester {
	ingester := hyperstats.NewIngester(group, workers, workers*64)

	go func() {
		for err := range ingester.Errors() {
			logger.Printf("ingest: %v", err)
		}
	}()

	return ingester
}

func printSnapshots(ctx context.Context, title string, group *hyperstats.Group) error {
	out, err := json.MarshalIndent(group.Snapshots(ctx), "", "  ")
	if err != nil {
		return err
	}

	fmt.Printf("%s:\n%s\n", title, out)

	return nil
}

func serve(ctx context.Context, logger *log.Logger, addr string, group *hyperstats.Group) error {
	srv := hyperstats.NewManagementHTTPServer(addr)

	err := srv.Start(ctx, group)
	if err != nil {
		return err
	}

	logger.Printf("management endpoints on http://%s", srv.Address())

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
