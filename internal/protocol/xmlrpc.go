package protocol

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"github.com/kolo/xmlrpc"
)

// Method names on the two RPC surfaces.
const (
	MethodUpdateSnapshot = "update_snapshot"
	MethodInteract       = "interact_with_debugger"
)

// Fault codes follow the XML-RPC interop conventions.
const (
	FaultParse          = -32700
	FaultMethodNotFound = -32601
	FaultInvalidParams  = -32602
)

// ErrMalformed reports a payload that could not be decoded.
var ErrMalformed = errors.New("malformed payload")

// MethodName extracts the method name from an XML-RPC methodCall document.
func MethodName(body []byte) (string, error) {
	var call struct {
		XMLName    xml.Name `xml:"methodCall"`
		MethodName string   `xml:"methodName"`
	}
	if err := xml.Unmarshal(body, &call); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	name := strings.TrimSpace(call.MethodName)
	if name == "" {
		return "", fmt.Errorf("%w: missing methodName", ErrMalformed)
	}
	return name, nil
}

// DecodeSnapshotCall decodes the first parameter of an update_snapshot call.
func DecodeSnapshotCall(body []byte) (Snapshot, error) {
	var w wireSnapshot
	if err := xmlrpc.Response(body).Unmarshal(&w); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return w.snapshot()
}

// DecodeActionCall decodes the first parameter of an interact_with_debugger
// call.
func DecodeActionCall(body []byte) (DebugAction, error) {
	var w wireAction
	if err := xmlrpc.Response(body).Unmarshal(&w); err != nil {
		return DebugAction{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return DebugAction{RequestedAction: w.RequestedAction, Arguments: w.Arguments}, nil
}

// EncodeSnapshotCall builds an update_snapshot methodCall document.
func EncodeSnapshotCall(s Snapshot) ([]byte, error) {
	return xmlrpc.EncodeMethodCall(MethodUpdateSnapshot, toWireSnapshot(s))
}

// EncodeStringResponse builds a methodResponse carrying a single string.
func EncodeStringResponse(value string) []byte {
	var b bytes.Buffer
	b.WriteString(xml.Header)
	b.WriteString("<methodResponse><params><param><value><string>")
	_ = xml.EscapeText(&b, []byte(value))
	b.WriteString("</string></value></param></params></methodResponse>")
	return b.Bytes()
}

// EncodeFault builds a methodResponse fault document.
func EncodeFault(code int, message string) []byte {
	var b bytes.Buffer
	b.WriteString(xml.Header)
	b.WriteString("<methodResponse><fault><value><struct>")
	fmt.Fprintf(&b, "<member><name>faultCode</name><value><int>%d</int></value></member>", code)
	b.WriteString("<member><name>faultString</name><value><string>")
	_ = xml.EscapeText(&b, []byte(message))
	b.WriteString("</string></value></member></struct></value></fault></methodResponse>")
	return b.Bytes()
}
