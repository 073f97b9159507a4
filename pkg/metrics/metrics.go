package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// PostsCreated counts successfully created posts
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "blogbliss",
		Name:      "posts_created_total",
		Help:      "Total number of posts created.",
	})

	// LikeToggles counts like/unlike toggle operations
	LikeToggles = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "blogbliss",
		Name:      "like_toggles_total",
		Help:      "Total number of like toggle operations.",
	})

	// CommentsAdded counts comments appended to posts
	CommentsAdded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "blogbliss",
		Name:      "comments_added_total",
		Help:      "Total number of comments added.",
	})
)

// Serve exposes /metrics on its own port; blocks until the listener fails.
func Serve(port string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(":"+port, mux)
}
