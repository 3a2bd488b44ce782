// Package valuefn defines the external value/policy collaborator
// contract the search engine consumes, plus a trivial built-in
// implementation and an HTTP adapter for an out-of-process one.
// Training weights is out of scope; this package only defines how the
// core calls out to whatever produced them.
package valuefn

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"scrimmage/feature"
	"scrimmage/game"
)

// ValueFunction scores a state from the active side's perspective: a
// single scalar, conventionally in [-1, 1], with no side-flip applied —
// callers (game.Evaluate-shaped closures, searcher rollouts) own the
// sign convention at their own boundary.
type ValueFunction interface {
	Value(state [feature.StateSize]float32) float64
}

// PolicyNetwork scores one candidate action against the state it would
// be taken from, returning an unnormalized logit. Neither this package
// nor the searcher normalises logits into priors; no softmax helper is
// provided.
type PolicyNetwork interface {
	Logit(state [feature.StateSize]float32, action [feature.ActionSize]float32) float64
}

// EvaluateWith adapts a ValueFunction into the game.Evaluate shape the
// searcher and simulator.GreedyPolicy already take, extracting features
// at the call site so neither package needs to import this one.
func EvaluateWith(vf ValueFunction) game.Evaluate {
	return func(state *game.MatchState) float64 {
		return vf.Value(feature.ExtractState(state))
	}
}

// LinearValueFunction is a dot product against a fixed weight vector —
// deliberately the simplest possible implementation, since fitting
// weights is not this module's job.
type LinearValueFunction struct {
	Weights [feature.StateSize]float64
	Bias    float64
}

func (l *LinearValueFunction) Value(state [feature.StateSize]float32) float64 {
	sum := l.Bias
	for i, f := range state {
		sum += float64(f) * l.Weights[i]
	}
	return sum
}

// LinearPolicyNetwork scores an action as a dot product over the
// concatenation of state and action features.
type LinearPolicyNetwork struct {
	StateWeights  [feature.StateSize]float64
	ActionWeights [feature.ActionSize]float64
	Bias          float64
}

func (l *LinearPolicyNetwork) Logit(state [feature.StateSize]float32, action [feature.ActionSize]float32) float64 {
	sum := l.Bias
	for i, f := range state {
		sum += float64(f) * l.StateWeights[i]
	}
	for i, f := range action {
		sum += float64(f) * l.ActionWeights[i]
	}
	return sum
}

// HTTPValueFunction POSTs a feature vector to a remote scorer and
// decodes a single float back, the net/http+encoding/json idiom carried
// forward from the teacher's distributed-state client, now serving the
// value contract instead of a shared game-state contract.
type HTTPValueFunction struct {
	URL    string
	Client *http.Client
}

func NewHTTPValueFunction(url string) *HTTPValueFunction {
	return &HTTPValueFunction{URL: url, Client: http.DefaultClient}
}

func (h *HTTPValueFunction) Value(state [feature.StateSize]float32) float64 {
	payload, err := json.Marshal(struct {
		State [feature.StateSize]float32 `json:"state"`
	}{state})
	if err != nil {
		return 0
	}

	resp, err := h.Client.Post(h.URL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return 0
	}
	defer resp.Body.Close()

	var result struct {
		Value float64 `json:"value"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0
	}
	return result.Value
}

// HTTPPolicyNetwork is the PolicyNetwork analog of HTTPValueFunction.
type HTTPPolicyNetwork struct {
	URL    string
	Client *http.Client
}

func NewHTTPPolicyNetwork(url string) *HTTPPolicyNetwork {
	return &HTTPPolicyNetwork{URL: url, Client: http.DefaultClient}
}

func (h *HTTPPolicyNetwork) Logit(state [feature.StateSize]float32, action [feature.ActionSize]float32) float64 {
	payload, err := json.Marshal(struct {
		State  [feature.StateSize]float32  `json:"state"`
		Action [feature.ActionSize]float32 `json:"action"`
	}{state, action})
	if err != nil {
		return 0
	}

	resp, err := h.Client.Post(h.URL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return 0
	}
	defer resp.Body.Close()

	var result struct {
		Logit float64 `json:"logit"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0
	}
	return result.Logit
}

// Serve hosts vf behind a single /value endpoint, the mirror of the
// teacher's StartAgentServer/handleFindMove shape generalized from
// move-finding to value-scoring.
func Serve(addr string, vf ValueFunction) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/value", handleValue(vf))
	return http.ListenAndServe(addr, mux)
}

func handleValue(vf ValueFunction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			State [feature.StateSize]float32 `json:"state"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, fmt.Sprintf("bad request: %v", err), http.StatusBadRequest)
			return
		}

		value := vf.Value(payload.State)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(struct {
			Value float64 `json:"value"`
		}{value})
	}
}

// ServePolicy is the PolicyNetwork analog of Serve.
func ServePolicy(addr string, pn PolicyNetwork) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/policy", handlePolicy(pn))
	return http.ListenAndServe(addr, mux)
}

func handlePolicy(pn PolicyNetwork) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			State  [feature.StateSize]float32  `json:"state"`
			Action [feature.ActionSize]float32 `json:"action"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, fmt.Sprintf("bad request: %v", err), http.StatusBadRequest)
			return
		}

		logit := pn.Logit(payload.State, payload.Action)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(struct {
			Logit float64 `json:"logit"`
		}{logit})
	}
}
