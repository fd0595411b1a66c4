package host

import (
	"reflect"
	"strings"
)

// RequestAttributes is a bit set describing how a request reaches an
// operation: its network origin, transport security and wire format.
type RequestAttributes uint64

const (
	AttrNone RequestAttributes = 0

	AttrLocalhost RequestAttributes = 1 << iota
	AttrLocalSubnet
	AttrExternal
	AttrSecure
	AttrInSecure
	AttrReply
	AttrOneWay

	AttrJSON
	AttrXML
	AttrJSV
	AttrCSV
	AttrHTML
	AttrYAML
	AttrMsgPack
	AttrProtoBuf
	AttrFormatOther
)

// AttrFormats masks the wire-format bits of RequestAttributes.
const AttrFormats = AttrJSON | AttrXML | AttrJSV | AttrCSV | AttrHTML |
	AttrYAML | AttrMsgPack | AttrProtoBuf | AttrFormatOther

var requestAttributeNames = map[string]RequestAttributes{
	"localhost":   AttrLocalhost,
	"localsubnet": AttrLocalSubnet,
	"external":    AttrExternal,
	"secure":      AttrSecure,
	"insecure":    AttrInSecure,
	"reply":       AttrReply,
	"oneway":      AttrOneWay,
	"json":        AttrJSON,
	"xml":         AttrXML,
	"jsv":         AttrJSV,
	"csv":         AttrCSV,
	"html":        AttrHTML,
	"yaml":        AttrYAML,
	"msgpack":     AttrMsgPack,
	"protobuf":    AttrProtoBuf,
	"formatother": AttrFormatOther,
}

// ParseRequestAttributes maps a name such as "json" to its attribute bit,
// ignoring case. Unknown names yield AttrNone.
func ParseRequestAttributes(name string) RequestAttributes {
	return requestAttributeNames[normalizeName(name)]
}

// Feature is a bit set of host features a request DTO may be excluded from.
type Feature uint64

const (
	FeatureNone Feature = 0

	FeatureJSON Feature = 1 << iota
	FeatureXML
	FeatureJSV
	FeatureCSV
	FeatureHTML
	FeatureYAML
	FeatureMsgPack
	FeatureProtoBuf
	FeatureMetadata
)

var featureNames = map[string]Feature{
	"json":     FeatureJSON,
	"xml":      FeatureXML,
	"jsv":      FeatureJSV,
	"csv":      FeatureCSV,
	"html":     FeatureHTML,
	"yaml":     FeatureYAML,
	"msgpack":  FeatureMsgPack,
	"protobuf": FeatureProtoBuf,
	"metadata": FeatureMetadata,
}

// ParseFeature maps a name such as "csv" to its feature bit, ignoring case.
// Unknown names yield FeatureNone.
func ParseFeature(name string) Feature {
	return featureNames[normalizeName(name)]
}

// Restrict limits the request attributes an operation accepts.
type Restrict struct {
	AccessTo RequestAttributes
}

// CanAccess reports whether a request with the wire format of attrs may
// reach the operation. A nil restriction, a restriction without format bits
// and attrs without format bits are all unrestricted.
func (r *Restrict) CanAccess(attrs RequestAttributes) bool {
	if r == nil {
		return true
	}
	formats := r.AccessTo & AttrFormats
	requested := attrs & AttrFormats
	if formats == 0 || requested == 0 {
		return true
	}
	return requested&formats == requested
}

// HasAccessToFeature reports whether the request type t is not excluded from
// feature f by an Exclude annotation. FeatureNone is always accessible.
func HasAccessToFeature(src MetadataSource, t reflect.Type, f Feature) bool {
	if f == FeatureNone || src == nil || t == nil {
		return true
	}
	ex, ok := FirstAttribute[Exclude](src.TypeAttributes(t))
	if !ok {
		return true
	}
	return ex.Features&f == 0
}

var mimeTypes = map[string]string{
	"json":     "application/json",
	"xml":      "application/xml",
	"jsv":      "text/jsv",
	"csv":      "text/csv",
	"html":     "text/html",
	"yaml":     "application/yaml",
	"msgpack":  "application/x-msgpack",
	"protobuf": "application/x-protobuf",
}

// MimeType returns the MIME type for a format name. Unknown formats map to
// "application/<format>"; a blank format returns an empty string.
func MimeType(format string) string {
	name := normalizeName(format)
	if name == "" {
		return ""
	}
	if mt, ok := mimeTypes[name]; ok {
		return mt
	}
	return "application/" + name
}

// TrimFormat strips the "x-" prefix used for vendor format names.
func TrimFormat(format string) string {
	return strings.TrimPrefix(strings.TrimSpace(format), "x-")
}

func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(name, "-", "")
}
