// Package sim implements the embedded-system scenarios driven by the
// simulator menu and its self-test.
//
// Each scenario is a plain function that runs against a *Console: the
// console carries the output writer, the input prompter, the pause policy
// and the trace sink, so scenarios share no package-level state. A console
// built with SkipPauses never sleeps, which is what the self-test and unit
// tests rely on.
//
// Scenarios print exactly the lines a user sees and also return their
// observable result (visited light states, register values, stored value)
// so callers can check behaviour without scraping output.
package sim
