// Package lib provides a Go SDK for loading and walking language-learning
// task packages programmatically.
//
// This package allows applications to load task documents, flatten them into
// an ordered flow, validate their internal references, and drive a learner
// session without shelling out to the linguaflow CLI binary.
//
// # Quick Start
//
// Create a client, load a task, and walk its flow:
//
//	client, err := lib.New(ctx, lib.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Load a task package from a file or URL.
//	task, err := client.LoadTask(ctx, "task.json")
//
//	// Flatten into the ordered flow.
//	flow, err := client.Flatten(*task)
//
//	// Drive a session step by step.
//	session, err := client.NewSession(*task)
//	session.Start()
//	for session.Screen() != lib.ScreenComplete {
//	    switch session.Screen() {
//	    case lib.ScreenPhaseGuidance:
//	        session.ContinueFromGuidance()
//	    case lib.ScreenQuestion:
//	        item, _ := session.CurrentItem()
//	        if item.Kind() == lib.FlowKindQuestion {
//	            session.RecordAnswer() // After collecting the learner's answer.
//	        }
//	        session.ContinueFromFlow()
//	    }
//	}
//
// # Task Sources
//
// [Client.LoadTask] accepts a local file path (JSON or YAML, selected by
// extension) or an http(s) URL serving the document as JSON.
//
// # Validation
//
// Run integrity checks before shipping a task document:
//
//	results, _ := client.Check(ctx, *task)
//	for _, r := range results {
//	    fmt.Printf("%s: %s (%s)\n", r.ID, r.Message, r.Status)
//	}
//
// # Stored Sessions
//
// Session progress persisted by the CLI can be listed and removed:
//
//	sessions, _ := client.ListSessions(ctx, nil)
//	client.RemoveSession(ctx, sessions[0].ID)
//
// # Error Handling
//
// All methods return errors that can be inspected with [errors.Is]:
//
//   - [ErrNotFound]: Resource does not exist.
//   - [ErrNotValid]: Invalid input or operation (e.g. continuing past an
//     unanswered question).
//
// # Testing
//
// Use a temporary database path to write tests without touching the user's
// session store:
//
//	client, _ := lib.New(ctx, lib.Config{
//	    DBPath: filepath.Join(t.TempDir(), "test.db"),
//	})
//	defer client.Close()
//
// # Thread Safety
//
// A [Client] is safe for concurrent use from multiple goroutines. A session
// controller returned by [Client.NewSession] is not: drive each session from
// a single goroutine.
package lib
