package reflection

import (
	"reflect"

	"github.com/vitalvas/introspec/host"
)

var errorType = reflect.TypeFor[error]()

// isOneWay reports whether op is fire-and-forget. The explicit flag wins;
// otherwise the service type is scanned for an exported method taking the
// request type (or a pointer to it) that returns nothing or only an error.
func isOneWay(op *host.Operation) bool {
	if op.IsOneWay {
		return true
	}
	if op.ServiceType == nil || op.RequestType == nil {
		return false
	}

	reqType := host.Indirect(op.RequestType)
	svc := op.ServiceType
	if svc.Kind() != reflect.Pointer && svc.Kind() != reflect.Interface {
		// The pointer method set includes value receivers.
		svc = reflect.PointerTo(svc)
	}

	for i := range svc.NumMethod() {
		if isOneWayMethod(svc.Method(i).Type, reqType, svc.Kind() == reflect.Interface) {
			return true
		}
	}
	return false
}

func isOneWayMethod(fn, reqType reflect.Type, isInterface bool) bool {
	switch {
	case fn.NumOut() == 0:
	case fn.NumOut() == 1 && fn.Out(0) == errorType:
	default:
		return false
	}

	// Concrete method types carry the receiver as the first argument.
	first := 1
	if isInterface {
		first = 0
	}
	for i := first; i < fn.NumIn(); i++ {
		if host.Indirect(fn.In(i)) == reqType {
			return true
		}
	}
	return false
}
