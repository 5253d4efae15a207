package cli

import (
	"fmt"
	"io"

	"github.com/dmitrijs2005/bucketlist/internal/models"
)

const emptyListMessage = "Your adventure list is empty! Add your dream destinations with 'add <name>' to start planning your next journey."

func (a *App) render(list []models.Destination) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	writeList(a.out, list)
}

// writeList prints one numbered line per destination:
//
//  1. [Visited]     Tokyo  (id: 6f1c…)
func writeList(w io.Writer, list []models.Destination) {
	if len(list) == 0 {
		fmt.Fprintln(w, emptyListMessage)
		return
	}
	for i, d := range list {
		fmt.Fprintf(w, "%3d. %-13s %s  (id: %s)\n", i+1, "["+d.StatusLabel()+"]", d.Name, d.ID)
	}
}
