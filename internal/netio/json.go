package netio

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/joshharrison/critpath/internal/graph"
	"github.com/joshharrison/critpath/internal/pert"
)

var errNotActivityList = errors.New(`expected an array of activities or an object with an "activities" array`)

// activityList locates the activity array: either the document itself or its
// "activities" member.
func activityList(data []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, errors.New("invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if root.IsArray() {
		return root, nil
	}
	if root.IsObject() {
		if list := root.Get("activities"); list.IsArray() {
			return list, nil
		}
	}
	return gjson.Result{}, errNotActivityList
}

// jsonPredecessors accepts an array of ids or a ';'-separated string.
func jsonPredecessors(v gjson.Result) []string {
	if !v.IsArray() {
		return splitPredecessors(v.String())
	}
	out := []string{}
	v.ForEach(func(_, item gjson.Result) bool {
		if p := strings.TrimSpace(item.String()); p != "" {
			out = append(out, p)
		}
		return true
	})
	return out
}

func eachObject(list gjson.Result, fn func(item gjson.Result)) error {
	var err error
	i := 0
	list.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			err = fmt.Errorf("activity at index %d is not an object", i)
			return false
		}
		fn(item)
		i++
		return true
	})
	return err
}

// ParseJSON reads activities with keys id, name, duration and predecessors.
func ParseJSON(data []byte) ([]graph.Activity, error) {
	list, err := activityList(data)
	if err != nil {
		return nil, err
	}

	activities := []graph.Activity{}
	err = eachObject(list, func(item gjson.Result) {
		a := graph.Activity{
			ID:           item.Get("id").String(),
			Name:         item.Get("name").String(),
			Duration:     item.Get("duration").Float(),
			Predecessors: jsonPredecessors(item.Get("predecessors")),
		}
		if a.Name == "" {
			a.Name = a.ID
		}
		activities = append(activities, a)
	})
	if err != nil {
		return nil, err
	}
	return activities, nil
}

// ParsePERTJSON reads three-point activities. The most likely estimate may be
// spelled mostLikely or most_likely.
func ParsePERTJSON(data []byte) ([]pert.Activity, error) {
	list, err := activityList(data)
	if err != nil {
		return nil, err
	}

	activities := []pert.Activity{}
	err = eachObject(list, func(item gjson.Result) {
		mostLikely := item.Get("mostLikely")
		if !mostLikely.Exists() {
			mostLikely = item.Get("most_likely")
		}
		a := pert.Activity{
			ID:           item.Get("id").String(),
			Name:         item.Get("name").String(),
			Optimistic:   item.Get("optimistic").Float(),
			MostLikely:   mostLikely.Float(),
			Pessimistic:  item.Get("pessimistic").Float(),
			Predecessors: jsonPredecessors(item.Get("predecessors")),
		}
		if a.Name == "" {
			a.Name = a.ID
		}
		activities = append(activities, a)
	})
	if err != nil {
		return nil, err
	}
	return activities, nil
}
