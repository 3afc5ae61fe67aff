// Package validation binds request bodies and turns validator failures into
// 400 responses listing each offending JSON field.
package validation
