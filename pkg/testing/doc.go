// Package testing provides test helpers for strata element trees.
//
// # Quick Start
//
// Create a tester, pump a builder, and make assertions on what was drawn:
//
//	func TestCounter(t *testing.T) {
//	    tester := stratatest.NewTester(t)
//	    stratatest.Pump(tester, element.Column(
//	        element.NewLabel(values.Map(values.Anchored(count), strconv.Itoa)),
//	        element.OnKey("+", count, increment),
//	    ))
//
//	    tester.PressKey("+")
//	    ops := tester.Draw()
//	    if ops[0].Params["text"] != "1" {
//	        t.Errorf("expected label to read 1")
//	    }
//	}
//
// # Snapshot Testing
//
// Capture and compare the recorded draw operations:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/counter.snapshot.json")
//
// Update snapshots with:
//
//	STRATA_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Time
//
// Tick events carry the time of a fake clock owned by the tester:
//
//	tester.Tick(100 * time.Millisecond)
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import stratatest "github.com/go-drift/strata/pkg/testing"
package testing
