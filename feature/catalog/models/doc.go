// Package models defines the catalog entities exchanged with a store and the
// mutation payloads written to it.
//
// Entities are matched across stores by their cross-system key, never by id:
//
//   - Definition: Type
//   - Instance: Type and Handle
//   - AttributeDefinition and Attribute: namespace:key
//   - Collection, Page, Menu, Product: Handle
//   - File: the name derived by FileName
//
// Update payloads use pointer members so that only changed values are sent.
package models
