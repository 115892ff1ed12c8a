package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	resumeParseStartedTotal   atomic.Uint64
	resumeParseCompletedTotal atomic.Uint64
	resumeParseFailedTotal    atomic.Uint64

	interviewStartedTotal   atomic.Uint64
	interviewCompletedTotal atomic.Uint64
	answerEvaluatedTotal    atomic.Uint64

	parseJobsReceivedTotal            atomic.Uint64
	parseJobsCompletedTotal           atomic.Uint64
	parseJobsFailedTotal              atomic.Uint64
	parseJobsDeletedUnrecoverableTotal atomic.Uint64

	resumeParseDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncResumeParseStarted increments the parse started counter.
func IncResumeParseStarted() {
	resumeParseStartedTotal.Add(1)
}

// IncResumeParseCompleted increments the parse completed counter.
func IncResumeParseCompleted() {
	resumeParseCompletedTotal.Add(1)
}

// IncResumeParseFailed increments the parse failed counter.
func IncResumeParseFailed() {
	resumeParseFailedTotal.Add(1)
}

// IncInterviewStarted increments the interview started counter.
func IncInterviewStarted() {
	interviewStartedTotal.Add(1)
}

// IncInterviewCompleted increments the interview completed counter.
func IncInterviewCompleted() {
	interviewCompletedTotal.Add(1)
}

// IncAnswerEvaluated increments the answers evaluated counter.
func IncAnswerEvaluated() {
	answerEvaluatedTotal.Add(1)
}

// IncParseJobsReceived increments the queue jobs received counter.
func IncParseJobsReceived() {
	parseJobsReceivedTotal.Add(1)
}

// IncParseJobsCompleted increments the queue jobs completed counter.
func IncParseJobsCompleted() {
	parseJobsCompletedTotal.Add(1)
}

// IncParseJobsFailed increments the queue jobs failed counter.
func IncParseJobsFailed() {
	parseJobsFailedTotal.Add(1)
}

// IncParseJobsDeletedUnrecoverable increments the counter for jobs dropped as unrecoverable.
func IncParseJobsDeletedUnrecoverable() {
	parseJobsDeletedUnrecoverableTotal.Add(1)
}

// ObserveResumeParseDurationMs records a resume parse duration in milliseconds.
func ObserveResumeParseDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	resumeParseDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "resume_parse_started_total", "Total resume parses started", resumeParseStartedTotal.Load())
	writeCounter(&buf, "resume_parse_completed_total", "Total resume parses completed", resumeParseCompletedTotal.Load())
	writeCounter(&buf, "resume_parse_failed_total", "Total resume parses failed", resumeParseFailedTotal.Load())
	writeCounter(&buf, "interview_started_total", "Total interviews started", interviewStartedTotal.Load())
	writeCounter(&buf, "interview_completed_total", "Total interviews completed", interviewCompletedTotal.Load())
	writeCounter(&buf, "answer_evaluated_total", "Total answers evaluated", answerEvaluatedTotal.Load())
	writeCounter(&buf, "parse_jobs_received_total", "Total parse jobs received from queue", parseJobsReceivedTotal.Load())
	writeCounter(&buf, "parse_jobs_completed_total", "Total parse jobs completed", parseJobsCompletedTotal.Load())
	writeCounter(&buf, "parse_jobs_failed_total", "Total parse jobs failed", parseJobsFailedTotal.Load())
	writeCounter(&buf, "parse_jobs_deleted_unrecoverable_total", "Total parse jobs dropped as unrecoverable", parseJobsDeletedUnrecoverableTotal.Load())
	writeHistogram(&buf, "resume_parse_duration_ms", "Resume parse duration in milliseconds", resumeParseDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
