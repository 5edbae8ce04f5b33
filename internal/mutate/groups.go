package mutate

import (
	"pinboard-cli/internal/board"
	"pinboard-cli/internal/history"
)

// AddGroup adds a group to the board document. The server-side group
// record is created by the store; this mirrors it into the state so pins
// can join it.
func AddGroup(g board.Group) history.Recipe {
	return func(draft *board.State) *board.State {
		if draft.FindGroup(g.ID) != nil {
			return draft
		}
		if g.PinIDs == nil {
			g.PinIDs = []string{}
		}
		draft.Groups = append(draft.Groups, g)
		return draft
	}
}

// AssignGroup moves a pin into groupID, or out of all groups when groupID
// is empty. The pin is first stripped from every group's membership list,
// then added to the target, so a pin id appears in at most one PinIDs
// list at any time.
func AssignGroup(pinID, groupID string) history.Recipe {
	return func(draft *board.State) *board.State {
		pin := draft.FindPin(pinID)
		if pin == nil {
			return draft
		}
		for i := range draft.Groups {
			draft.Groups[i].PinIDs = removeString(draft.Groups[i].PinIDs, pinID)
		}
		if groupID != "" {
			group := draft.FindGroup(groupID)
			if group == nil {
				// Dangling target: leave the pin ungrouped.
				pin.GroupID = ""
				return draft
			}
			group.PinIDs = append(group.PinIDs, pinID)
		}
		pin.GroupID = groupID
		return draft
	}
}
