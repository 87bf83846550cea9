package main

import (
	"bytes"
	"fmt"

	"github.com/google/renameio/v2"
	"github.com/grafana/symdiff/pkg/build"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors/version"
	"github.com/prometheus/common/expfmt"
)

func registerBuildInfo(reg prometheus.Registerer) {
	reg.MustRegister(version.NewCollector(build.Program))
}

// writeMetrics writes everything g gathers to path in the text exposition
// format.
func writeMetrics(path string, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}

	var buf bytes.Buffer
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(&buf, mf); err != nil {
			return fmt.Errorf("encoding metrics: %w", err)
		}
	}

	if err := renameio.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing metrics %s: %w", path, err)
	}
	return nil
}
