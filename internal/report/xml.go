package report

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"time"
)

// XML STRUCTURE:
//
//   <pickingList source="orders.csv" profile="goq" generated="2024-05-01T09:00:00+09:00">
//     <summary>
//       <orderCount>3</orderCount>
//       <lineCount>4</lineCount>
//       <excludedCount>1</excludedCount>
//       <shippingMethod>ネコポス</shippingMethod>
//       <shippingNote>午前中</shippingNote>
//     </summary>
//     <item n="1">
//       <productName>セット</productName>
//       <jan>4900000000018</jan>
//       <janDisplay>0018</janDisplay>
//       <parentJan>4900000000001</parentJan>
//       <parentJanDisplay>0001</parentJanDisplay>
//       <orderQuantity>2</orderQuantity>
//       <singleUnitCount>2</singleUnitCount>
//       <parentQuantity>6</parentQuantity>
//     </item>
//     <totalSingleUnits>8</totalSingleUnits>
//     <multiQuantityOrders>
//       <order n="1">...</order>
//     </multiQuantityOrders>
//   </pickingList>

// GenerateOptions contains options for XML generation.
type GenerateOptions struct {
	// Indent is the string used for indentation.
	Indent string

	IncludeXMLDeclaration bool
	XMLVersion            string
	Encoding              string

	// IndexAttribute is the attribute carrying the 1-based position of
	// items and orders.
	IndexAttribute string
}

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Indent:                "  ",
		IncludeXMLDeclaration: true,
		XMLVersion:            "1.0",
		Encoding:              "UTF-8",
		IndexAttribute:        "n",
	}
}

// XMLElement represents a generic XML element.
type XMLElement struct {
	XMLName    xml.Name
	Attributes []xml.Attr
	Value      string
	Children   []XMLElement
}

// GenerateXML renders doc as an XML picking document.
func GenerateXML(doc *Document, options GenerateOptions) ([]byte, error) {
	var buffer bytes.Buffer

	if options.IncludeXMLDeclaration {
		buffer.WriteString(fmt.Sprintf("<?xml version=\"%s\" encoding=\"%s\"?>\n",
			options.XMLVersion, options.Encoding))
	}

	if err := writeElement(&buffer, buildDocument(doc, options), options.Indent, 0); err != nil {
		return nil, fmt.Errorf("failed to marshal XML: %w", err)
	}
	return buffer.Bytes(), nil
}

// WriteXML writes the XML picking document to w.
func WriteXML(w io.Writer, doc *Document, options GenerateOptions) error {
	data, err := GenerateXML(doc, options)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write XML: %w", err)
	}
	return nil
}

// =============================================================================
// XML DOCUMENT BUILDING
// =============================================================================

func buildDocument(doc *Document, options GenerateOptions) XMLElement {
	root := XMLElement{
		XMLName: xml.Name{Local: "pickingList"},
		Attributes: []xml.Attr{
			attr("source", doc.Source),
			attr("profile", doc.Profile),
			attr("generated", doc.GeneratedAt.Format(time.RFC3339)),
		},
	}

	summary := XMLElement{
		XMLName: xml.Name{Local: "summary"},
		Children: []XMLElement{
			intElement("orderCount", doc.Summary.OrderCount),
			intElement("lineCount", doc.Summary.LineCount),
			intElement("excludedCount", doc.ExcludedCount),
			createSimpleElement("shippingMethod", doc.Summary.ShippingMethod),
		},
	}
	for _, note := range doc.Summary.ShippingNotes {
		summary.Children = append(summary.Children, createSimpleElement("shippingNote", note))
	}
	root.Children = append(root.Children, summary)

	for i, row := range doc.Rows {
		item := XMLElement{
			XMLName:    xml.Name{Local: "item"},
			Attributes: []xml.Attr{attr(options.IndexAttribute, strconv.Itoa(i+1))},
			Children: []XMLElement{
				createSimpleElement("productName", row.ProductName),
				createSimpleElement("jan", row.JAN),
				createSimpleElement("janDisplay", doc.ShortJAN(row.JAN)),
			},
		}
		if row.IsSet() {
			item.Children = append(item.Children,
				createSimpleElement("parentJan", row.ParentJAN),
				createSimpleElement("parentJanDisplay", doc.ShortJAN(row.ParentJAN)))
		}
		item.Children = append(item.Children,
			intElement("orderQuantity", row.OrderQuantity),
			intElement("singleUnitCount", row.SingleUnitCount))
		if row.HasParentQuantity {
			item.Children = append(item.Children, intElement("parentQuantity", row.ParentQuantity))
		}
		root.Children = append(root.Children, item)
	}

	root.Children = append(root.Children, intElement("totalSingleUnits", doc.TotalSingleUnits))

	multi := doc.MultiQuantityLines()
	if len(multi) > 0 {
		list := XMLElement{XMLName: xml.Name{Local: "multiQuantityOrders"}}
		for i, line := range multi {
			list.Children = append(list.Children, XMLElement{
				XMLName:    xml.Name{Local: "order"},
				Attributes: []xml.Attr{attr(options.IndexAttribute, strconv.Itoa(i+1))},
				Children: []XMLElement{
					createSimpleElement("groupId", line.Item.GroupID),
					createSimpleElement("orderId", line.Item.OrderID),
					createSimpleElement("recipientName", line.Item.RecipientName),
					createSimpleElement("productName", line.Item.ProductName),
					createSimpleElement("productSku", line.Item.ProductSKU),
					createSimpleElement("quantity", line.DisplayQuantity()),
					createSimpleElement("jan", line.Resolved.JAN),
				},
			})
		}
		root.Children = append(root.Children, list)
	}

	return root
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

// createSimpleElement creates a simple XML element with a text value.
func createSimpleElement(name, value string) XMLElement {
	return XMLElement{
		XMLName: xml.Name{Local: name},
		Value:   value,
	}
}

func intElement(name string, value int) XMLElement {
	return createSimpleElement(name, strconv.Itoa(value))
}

// writeElement writes an XML element to the buffer with indentation.
// Elements without value and children are written self-closing.
func writeElement(buffer *bytes.Buffer, element XMLElement, indent string, level int) error {
	for i := 0; i < level; i++ {
		buffer.WriteString(indent)
	}

	buffer.WriteString("<")
	buffer.WriteString(element.XMLName.Local)
	for _, a := range element.Attributes {
		buffer.WriteString(" ")
		buffer.WriteString(a.Name.Local)
		buffer.WriteString("=\"")
		if err := xml.EscapeText(buffer, []byte(a.Value)); err != nil {
			return err
		}
		buffer.WriteString("\"")
	}

	if len(element.Children) == 0 && element.Value == "" {
		buffer.WriteString("/>\n")
		return nil
	}

	buffer.WriteString(">")

	if element.Value != "" {
		if err := xml.EscapeText(buffer, []byte(element.Value)); err != nil {
			return err
		}
	} else {
		buffer.WriteString("\n")
		for _, child := range element.Children {
			if err := writeElement(buffer, child, indent, level+1); err != nil {
				return err
			}
		}
		for i := 0; i < level; i++ {
			buffer.WriteString(indent)
		}
	}

	buffer.WriteString("</")
	buffer.WriteString(element.XMLName.Local)
	buffer.WriteString(">\n")
	return nil
}
