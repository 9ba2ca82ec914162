// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command sinkbench pushes items through an in-memory pipe, one
// submit-and-drain operation per item, and reports throughput.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"code.hybscloud.com/sink"
)

var opts struct {
	items    int
	queue    int
	staging  int
	batch    int
	logLevel string
	logPlain bool
}

var rootCmd = &cobra.Command{
	Use:           "sinkbench",
	Short:         "measure submit-and-drain throughput over an in-memory pipe",
	SilenceUsage:  true,
	SilenceErrors: true,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(opts.logLevel, opts.logPlain)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if opts.items < 0 {
			return fmt.Errorf("items must not be negative: %d", opts.items)
		}
		if opts.batch < 1 {
			return fmt.Errorf("batch must be positive: %d", opts.batch)
		}
		return run()
	},
}

func init() {
	f := rootCmd.Flags()
	f.IntVarP(&opts.items, "items", "n", 100000, "number of items to send")
	f.IntVarP(&opts.queue, "queue", "q", 64, "pipe queue capacity")
	f.IntVarP(&opts.staging, "staging", "s", 4, "writer staging capacity")
	f.IntVarP(&opts.batch, "batch", "b", 1, "concurrent operations per round, each on its own pipe")
	f.StringVarP(&opts.logLevel, "log-level", "l", "info", "log level (debug, info, warn, error)")
	f.BoolVarP(&opts.logPlain, "log-plain", "p", false, "use plain format for logging (json by default)")
}

func setupLogging(level string, plain bool) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	if plain {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&log.JSONFormatter{})
	}
	return nil
}

// lane is one pipe.
type lane struct {
	w *sink.Writer[int]
	r *sink.Reader[int]
}

func run() error {
	lanes := make([]lane, opts.batch)
	for i := range lanes {
		w, r := sink.NewPipeSize[int](opts.queue, opts.staging)
		lanes[i] = lane{w: w, r: r}
		log.WithFields(log.Fields{"lane": i, "serial": w.Serial()}).Debug("pipe created")
	}

	var g errgroup.Group
	sums := make([]int, len(lanes))
	for i := range lanes {
		r := lanes[i].r
		g.Go(func() error {
			n, err := consume(r)
			sums[i] = n
			return err
		})
	}

	start := time.Now()
	g.Go(func() error {
		return produce(lanes)
	})
	if err := g.Wait(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	var got int
	for _, s := range sums {
		got += s
	}
	if got != opts.items {
		return fmt.Errorf("received %d items, sent %d", got, opts.items)
	}

	fields := log.Fields{
		"items":   opts.items,
		"lanes":   opts.batch,
		"elapsed": elapsed.String(),
	}
	if elapsed > 0 {
		fields["items_per_sec"] = int64(float64(opts.items) / elapsed.Seconds())
	}
	log.WithFields(fields).Info("done")
	return nil
}

// produce spreads items across lanes, driving one operation per lane and
// round with sink.WaitAll, then closes every writer.
func produce(lanes []lane) error {
	writers := make([]*sink.Writer[int], len(lanes))
	for i := range lanes {
		writers[i] = lanes[i].w
	}
	defer func() {
		for _, w := range writers {
			if w != nil {
				w.Close()
			}
		}
	}()

	sends := make([]*sink.Send[*sink.Writer[int], int], 0, len(lanes))
	for next := 0; next < opts.items; {
		sends = sends[:0]
		for i := 0; i < len(writers) && next < opts.items; i++ {
			sends = append(sends, sink.NewSend(writers[i], next))
			next++
		}
		back, err := sink.WaitAll(sends...)
		if err != nil {
			return err
		}
		copy(writers, back)
		log.WithField("sent", next).Debug("round flushed")
	}
	return nil
}

// consume counts items until the writer closes.
func consume(r *sink.Reader[int]) (int, error) {
	defer r.Close()
	n := 0
	for {
		_, err := r.Recv()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		n++
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Error("sinkbench failed")
		os.Exit(1)
	}
}
