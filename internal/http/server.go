package http

import (
	"fmt"
	"net/http"

	"github.com/ChrisAdan/earth/internal/log"
	"github.com/ChrisAdan/earth/pkg/workflow"
)

// NewMux builds the read-only listing surface: workflow and template
// catalogs plus a health probe. Dataset generation stays on the CLI.
func NewMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/workflows", workflowsHandler)
	mux.HandleFunc("/templates", templatesHandler)
	return mux
}

func StartServer(port string) error {
	log.GetLogger().Infof("Starting earth server on :%s", port)
	return http.ListenAndServe(":"+port, NewMux())
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintf(w, "earth server is running")
}

func workflowsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	fmt.Fprintf(w, "Workflows:\n")
	for _, info := range workflow.DescribeWorkflows() {
		if info.DefaultCount > 0 {
			fmt.Fprintf(w, "- %s (default %d records): %s\n", info.Name, info.DefaultCount, info.Description)
		} else {
			fmt.Fprintf(w, "- %s: %s\n", info.Name, info.Description)
		}
	}
}

func templatesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	fmt.Fprintf(w, "Templates:\n")
	for _, tpl := range workflow.ListTemplates() {
		fmt.Fprintf(w, "- %s: %s\n", tpl.Name, tpl.Description)
		for _, wc := range tpl.Workflows {
			fmt.Fprintf(w, "    %s: %d records\n", wc.Name, wc.Count)
		}
	}
}
