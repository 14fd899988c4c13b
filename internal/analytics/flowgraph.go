package analytics

import (
	"github.com/spec-kit/interaction-analytics/internal/domain"
)

// NodeKind identifies the tier a flow-graph node belongs to.
type NodeKind string

const (
	NodeChannel NodeKind = "channel"
	NodeProcess NodeKind = "process"
	NodeStatus  NodeKind = "status"
)

// FlowNode is one node of the channel→process→status graph.
type FlowNode struct {
	ID    string   `json:"id"`
	Kind  NodeKind `json:"kind"`
	Label string   `json:"label"`
}

// FlowLink is a weighted edge between adjacent tiers.
type FlowLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

// FlowGraph is a two-hop directed graph with event-count weighted edges.
// Links connect channel→process or process→status only.
type FlowGraph struct {
	Nodes []FlowNode `json:"nodes"`
	Links []FlowLink `json:"links"`
}

func nodeID(kind NodeKind, value string) string {
	return string(kind) + ":" + value
}

// BuildFlowGraph aggregates events into the channel→process→status graph.
// Nodes and links appear only with at least one supporting event, in
// first-seen order. An empty input yields an empty graph.
func BuildFlowGraph(events []domain.Event) FlowGraph {
	graph := FlowGraph{Nodes: []FlowNode{}, Links: []FlowLink{}}

	seenNodes := make(map[string]bool)
	addNode := func(kind NodeKind, value string) string {
		id := nodeID(kind, value)
		if !seenNodes[id] {
			seenNodes[id] = true
			graph.Nodes = append(graph.Nodes, FlowNode{ID: id, Kind: kind, Label: value})
		}
		return id
	}

	linkIndex := make(map[[2]string]int)
	addLink := func(source, target string) {
		key := [2]string{source, target}
		if idx, ok := linkIndex[key]; ok {
			graph.Links[idx].Weight++
			return
		}
		linkIndex[key] = len(graph.Links)
		graph.Links = append(graph.Links, FlowLink{Source: source, Target: target, Weight: 1})
	}

	for _, e := range events {
		channel := addNode(NodeChannel, string(e.Channel))
		process := addNode(NodeProcess, e.Process)
		status := addNode(NodeStatus, e.Status)
		addLink(channel, process)
		addLink(process, status)
	}
	return graph
}
