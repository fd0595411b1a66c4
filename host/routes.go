package host

// ReplyURL returns the generic request/reply URL for the DTO v, used when a
// request type declares no Route.
func ReplyURL(v any) string {
	return "/json/reply/" + dtoName(v)
}

// OneWayURL returns the generic fire-and-forget URL for the DTO v.
func OneWayURL(v any) string {
	return "/json/oneway/" + dtoName(v)
}

func dtoName(v any) string {
	t := typeOf(v)
	if t == nil {
		return ""
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
