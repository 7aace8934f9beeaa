package palette

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Node is an entry in a nested menu. A node with children opens a submenu;
// a leaf carries the action to run.
type Node struct {
	Label    string
	Action   string
	Active   bool
	Children []Node
}

const (
	submenuPrefix = "__submenu__:"
	backAction    = "__back__"
)

// Show walks the menu rooted at nodes until a leaf is picked and returns its
// action. Picking "Back" in a submenu goes up one level; cancelling at any
// level returns ErrCancelled.
func Show(ctx context.Context, l Launcher, title string, nodes []Node) (string, error) {
	return showLevel(ctx, l, nodes, []string{title})
}

func showLevel(ctx context.Context, l Launcher, nodes []Node, breadcrumb []string) (string, error) {
	if len(nodes) == 0 {
		return "", fmt.Errorf("menu: no items to show")
	}

	for {
		entries := make([]Entry, 0, len(nodes)+1)
		if len(breadcrumb) > 1 {
			entries = append(entries, Entry{Label: "← Back", Value: backAction})
		}
		for i, n := range nodes {
			e := Entry{Label: n.Label, Value: n.Action, Active: n.Active}
			if len(n.Children) > 0 {
				e.Label += " →"
				e.Value = submenuPrefix + strconv.Itoa(i)
			}
			entries = append(entries, e)
		}

		picked, err := l.Pick(ctx, breadcrumb[len(breadcrumb)-1], entries)
		if err != nil {
			return "", err
		}

		switch {
		case picked.Value == backAction:
			return "", errBack
		case strings.HasPrefix(picked.Value, submenuPrefix):
			idx, err := strconv.Atoi(strings.TrimPrefix(picked.Value, submenuPrefix))
			if err != nil || idx < 0 || idx >= len(nodes) {
				continue
			}
			action, err := showLevel(ctx, l, nodes[idx].Children, append(breadcrumb, nodes[idx].Label))
			if errors.Is(err, errBack) {
				continue
			}
			return action, err
		case picked.Value == "":
			continue
		default:
			return picked.Value, nil
		}
	}
}

var errBack = errors.New("back")
