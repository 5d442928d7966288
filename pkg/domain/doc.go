/*
Package domain contains the circuit graph model: components, ports,
connectors, circuits and projects.

A Circuit owns its Components, and each Component owns its Ports. Connectors
hold non-owning port handles plus the ids of the components on either end, so
the circuit stays the single owner of every node in the graph. All signal
values are single booleans; evaluation is synchronous and single-threaded.
*/
package domain
