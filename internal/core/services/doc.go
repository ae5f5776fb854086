// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The analysis pipeline is collect, match, score, assemble:
//
//   - Collector runs every SignalSource concurrently and merges the results
//   - Match and SignalMatches apply the lexical keyword and category rules
//   - Score computes confidence and trend for a matched signal set
//   - AnalysisService turns matches into ranked narratives
//
// HistoryService reads back runs that AnalysisService recorded, and
// Scheduler repeats the pipeline on an interval.
//
// Services are pure Go with no network access of their own.
package services
