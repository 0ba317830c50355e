package server

import (
	"math"
	"time"

	"SignalSentinel/internal/model"
	"SignalSentinel/internal/scheduler"
)

// SignalsResponse is the JSON body of /api/v1/signals.
type SignalsResponse struct {
	Symbol  string        `json:"symbol"`
	CycleID string        `json:"cycle_id,omitempty"`
	At      *time.Time    `json:"at,omitempty"`
	Status  string        `json:"status,omitempty"`
	Signals []SignalDTO   `json:"signals"`
	Bars    []BarDTO      `json:"bars"`
	Peaks   []ExtremumDTO `json:"peaks"`
	Troughs []ExtremumDTO `json:"troughs"`
}

type SignalDTO struct {
	Side  string    `json:"side"`
	Price *float64  `json:"price"`
	Time  time.Time `json:"time"`
}

// BarDTO mirrors model.AnnotatedBar with undefined values rendered as null.
type BarDTO struct {
	Time          time.Time `json:"time"`
	Open          *float64  `json:"open"`
	High          *float64  `json:"high"`
	Low           *float64  `json:"low"`
	Close         *float64  `json:"close"`
	Engulfing     string    `json:"engulfing"`
	Consolidation string    `json:"consolidation"`
	RangeHigh     *float64  `json:"range_high"`
	RangeLow      *float64  `json:"range_low"`
	SMA           *float64  `json:"sma"`
	RSI           *float64  `json:"rsi"`
	Buy           bool      `json:"buy"`
	Sell          bool      `json:"sell"`
}

type ExtremumDTO struct {
	Time  time.Time `json:"time"`
	Value *float64  `json:"value"`
}

// num returns nil for NaN and Inf, which encoding/json cannot represent.
func num(v float64) *float64 {
	if model.IsUndefined(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func newSignalsResponse(snap scheduler.Snapshot) SignalsResponse {
	resp := SignalsResponse{
		CycleID: snap.CycleID,
		Status:  snap.Status,
		Signals: []SignalDTO{},
		Bars:    []BarDTO{},
		Peaks:   []ExtremumDTO{},
		Troughs: []ExtremumDTO{},
	}
	if !snap.At.IsZero() {
		at := snap.At
		resp.At = &at
	}
	for _, s := range snap.Signals {
		resp.Signals = append(resp.Signals, SignalDTO{Side: string(s.Side), Price: num(s.Price), Time: s.Time})
	}

	a := snap.Analysis
	if a == nil {
		return resp
	}
	resp.Symbol = a.Symbol
	for _, b := range a.Bars {
		resp.Bars = append(resp.Bars, BarDTO{
			Time:          b.Time,
			Open:          num(b.Open),
			High:          num(b.High),
			Low:           num(b.Low),
			Close:         num(b.Close),
			Engulfing:     string(b.Engulfing),
			Consolidation: string(b.Consolidation),
			RangeHigh:     num(b.RangeHigh),
			RangeLow:      num(b.RangeLow),
			SMA:           num(b.SMA),
			RSI:           num(b.RSI),
			Buy:           b.BuySignal,
			Sell:          b.SellSignal,
		})
	}
	resp.Peaks = extremaDTO(a.Extrema.Peaks)
	resp.Troughs = extremaDTO(a.Extrema.Troughs)
	return resp
}

func extremaDTO(in []model.Extremum) []ExtremumDTO {
	out := make([]ExtremumDTO, 0, len(in))
	for _, e := range in {
		out = append(out, ExtremumDTO{Time: e.Time, Value: num(e.Value)})
	}
	return out
}
