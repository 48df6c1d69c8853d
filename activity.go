package healthcheck

import (
	"fmt"
	"reflect"
)

//go:generate mockgen -destination internal/mockhealthcheck/activity.go -package mockhealthcheck github.com/einride/healthcheck-go Activity

// Activity is a background activity whose liveness can be checked by a supervisor.
//
// StillHealthy must return promptly and must not block, since it is invoked from the supervisor's timer.
type Activity interface {
	StillHealthy() bool
}

// NewActivity creates a new activity from a name and a liveness predicate.
func NewActivity(name string, fn func() bool) Activity {
	return &fnActivity{name: name, fn: fn}
}

type fnActivity struct {
	name string
	fn   func() bool
}

// String returns the name of the activity.
func (f fnActivity) String() string {
	return f.name
}

// StillHealthy invokes the predicate.
func (f fnActivity) StillHealthy() bool {
	return f.fn()
}

func isNilActivity(activity Activity) bool {
	if activity == nil {
		return true
	}
	v := reflect.ValueOf(activity)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

func activityName(activity Activity) string {
	if stringer, ok := activity.(fmt.Stringer); ok {
		return stringer.String()
	}
	return reflect.Indirect(reflect.ValueOf(activity)).Type().String()
}
