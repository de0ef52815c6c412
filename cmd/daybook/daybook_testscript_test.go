package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/amonks/daybook/internal/testsupport"
	"github.com/rogpeppe/go-internal/testscript"
)

const journalFixture = `{"result":[
	{"_id":"n2","title":"Retro","date":"2026-06-14T18:30:00Z","createdAt":"2026-06-14T18:31:00Z",
	 "content":[{"_type":"block","style":"h2","children":[{"_type":"span","text":"Wins"}]},
	            {"_type":"block","style":"normal","children":[{"_type":"span","text":"Shipped the release."}]}]},
	{"_id":"n1","title":"Kickoff","date":"2026-06-01T09:00:00Z","content":[]}
]}`

func TestDaybookScripts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2021-10-21/data/query/production" {
			http.Error(w, `{"error":{"description":"unknown dataset"}}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, journalFixture)
	}))
	t.Cleanup(server.Close)

	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			env.Setenv("JOURNAL_URL", server.URL)
			return testsupport.SetupScriptEnv(t, env)
		},
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"envset":        testsupport.CmdEnvSet,
			"todoid":        testsupport.CmdTodoID,
			"noteid":        testsupport.CmdNoteID,
			"journalconfig": cmdJournalConfig,
		},
	})
}

// cmdJournalConfig writes a daybook.toml pointing the journal at the
// fixture server.
func cmdJournalConfig(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("journalconfig does not support negation")
	}
	if len(args) != 1 {
		ts.Fatalf("usage: journalconfig DATASET")
	}
	content := fmt.Sprintf("[journal]\nproject-id = \"test\"\ndataset = %q\nbase-url = %q\n", args[0], ts.Getenv("JOURNAL_URL"))
	if err := os.WriteFile(ts.MkAbs("daybook.toml"), []byte(content), 0o644); err != nil {
		ts.Fatalf("write config: %v", err)
	}
}
