// cmd/ppiscope/stats.go
// Copyright(c) 2024-2026 ppiscope contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"ppiscope/pkg/log"
	"ppiscope/pkg/renderer"
)

// Stats collects a few statistics related to rendering and time spent in
// various phases of the system.
type Stats struct {
	draw      renderer.RendererStats
	startTime time.Time
	redraws   int
}

var startupMallocs uint64

func (stats Stats) LogValue(lg *log.Logger) slog.Value {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	if startupMallocs == 0 { // first call
		startupMallocs = ms.Mallocs
	}

	elapsed := time.Since(lg.Start).Seconds()
	mallocsPerSecond := float64(ms.Mallocs-startupMallocs) / elapsed

	attrs := []slog.Attr{
		slog.Float64("redraws_per_second", float64(stats.redraws)/time.Since(stats.startTime).Seconds()),
		slog.Float64("mallocs_per_second", mallocsPerSecond),
		slog.Int64("active_mallocs", int64(ms.Mallocs-ms.Frees)),
		slog.Int64("memory_in_use", int64(ms.HeapAlloc)),
		slog.Any("draw", stats.draw),
	}

	// System-wide load, best effort; these can fail on exotic platforms.
	if vm, err := mem.VirtualMemory(); err == nil {
		attrs = append(attrs, slog.Float64("system_memory_used_percent", vm.UsedPercent))
	}
	if pct, err := cpu.Percent(0, false); err == nil && len(pct) > 0 {
		attrs = append(attrs, slog.Float64("system_cpu_percent", pct[0]))
	}

	return slog.GroupValue(attrs...)
}
