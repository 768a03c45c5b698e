package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var treeOps = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "bstlab_tree_ops_total",
	Help: "tree mutations by operation and result",
}, []string{"op", "result"})

var treeSize = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "bstlab_tree_size",
	Help: "number of keys in the served tree",
})
