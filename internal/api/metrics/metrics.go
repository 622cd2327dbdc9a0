// Package metrics defines and registers the custom Prometheus metrics
// for the blog API. It is the single source of truth for metric names,
// labels, and help strings. Registration happens implicitly via
// promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blog"

// SignupsTotal counts user registrations by outcome.
// Label:
//   - result: "created", "rejected" (validation), or "error"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup requests, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "failed", or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// PostsCreatedTotal counts created posts by publication status.
var PostsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of posts created, by status.",
	},
	[]string{"status"},
)

// PostsDeletedTotal counts deleted posts.
var PostsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_deleted_total",
		Help:      "Total number of posts deleted.",
	},
)

// CommentsAddedTotal counts comments successfully attached to a post.
var CommentsAddedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_added_total",
		Help:      "Total number of comments attached to posts.",
	},
)

// CommentAttachFailuresTotal counts comment creations whose attach step
// failed (the compensating cleanup path).
var CommentAttachFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comment_attach_failures_total",
		Help:      "Total number of comments that could not be attached to their post.",
	},
)
