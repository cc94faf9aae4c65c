// Package diagram defines the declarative diagram document.
//
// A [Document] holds page metadata, shapes in declaration order and
// connectors drawn after all shapes. Geometric fields are kept as raw
// [Value]s (bare numbers or unit-suffixed strings) and are only resolved
// when the document is compiled.
//
// Two input schemas exist. [SchemaV1] documents carry "shapes" and
// "connectors" and place shapes by their top-left corner. [SchemaV2]
// documents carry "flowData" and "graphData" and place shapes by their
// center. Both measure Y downward unless the document overrides the
// convention.
package diagram
