package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// InitMetrics initializes metrics. If the passed port is zero, no action is
// taken. Otherwise, the function creates all the scanner metrics and registers
// them for availability at the passed port number under the '/metrics' path.
// Then it starts an HTTP server to serve the metrics. (The go runtime
// collectors ship with the prometheus default registry and need no explicit
// registration.)
func InitMetrics(port int) {
	if port == 0 {
		return
	}
	addScannerMetrics()
	http.Handle("/metrics", promhttp.Handler())
	go http.ListenAndServe(fmt.Sprintf(":%d", port), nil)
}
