package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "studio_notifications_sent_total",
	Help: "The total number of notification emails handed to the mail server",
}, []string{"event"})

var NotificationsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "studio_notifications_failed_total",
	Help: "The total number of notification emails that could not be sent",
}, []string{"event"})

var InquiriesReceived = promauto.NewCounter(prometheus.CounterOpts{
	Name: "studio_inquiries_received_total",
	Help: "The total number of feedback form submissions stored",
})
