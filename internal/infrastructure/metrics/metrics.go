package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counter labels.
const (
	RequestsTotal              = "app_requests_total"
	FilesAttachedTotal         = "files_attached_total"
	FilesAttachFailedTotal     = "files_attach_failed_total"
	FileStatusChangedTotal     = "file_status_changed_total"
	FileVisibilityChangedTotal = "file_visibility_changed_total"
	EventsDroppedTotal         = "events_dropped_total"
	DownloadURLFailedTotal     = "download_url_failed_total"
)

func NewCounter() *prometheus.CounterVec {
	return promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "attachments",
			Name:      "general_counters",
		},
		[]string{"result"})
}
