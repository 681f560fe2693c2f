package board

import "leadboard-engine/internal/lead"

// Column is one kanban lane. Leads whose status parses to nothing (a
// hand-edited cell in the sheet) simply appear in no lane.
type Column struct {
	Status string      `json:"status"`
	Count  int         `json:"count"`
	Cards  []lead.Lead `json:"cards"`
}

// Kanban groups leads into the fixed status order.
func Kanban(leads []lead.Lead) []Column {
	cols := make([]Column, len(lead.KanbanOrder))
	index := make(map[string]int, len(lead.KanbanOrder))
	for i, st := range lead.KanbanOrder {
		cols[i] = Column{Status: string(st), Cards: []lead.Lead{}}
		index[string(st)] = i
	}
	for _, l := range leads {
		i, ok := index[l.Status]
		if !ok {
			continue
		}
		cols[i].Cards = append(cols[i].Cards, l)
		cols[i].Count++
	}
	return cols
}
