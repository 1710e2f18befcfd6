// Package formatter provides response wrapping and serialization for SIRI responses.
//
// This package is organized into:
// - wrapper.go: Response wrapping logic (ServiceDelivery, filtering)
// - json.go: JSON serialization
// - xml.go: XML serialization with proper escaping
//
// XML is written by hand for precise control over element order.
package formatter
