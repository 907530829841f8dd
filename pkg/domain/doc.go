/*
Package domain contains the core domain models for the Bramble engine.

It defines the fundamental entities of the branching-dialogue language, such
as Documents, Nodes, Branches and the session State. This package is kept pure
and free of external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - Document: One parsed script file (metadata, variable defaults, node map).
  - Node: A named unit of content and branches; the unit of navigation.
  - Branch: An Option (keyword-triggered) or Condition (variable-triggered)
    path out of a node.
  - State: The runtime snapshot of a session (position, global and local
    variable stores, pending call).
  - Value: The scalar variant stored in variables.
*/
package domain
