/*
Package lsc is the language core of LSC, the scripting language of a small
game-creation tool.

LSC is indentation-structured and dynamically typed. Scripts attach behaviour
to the nodes of a scene tree, which lives in a host engine. The core consists
of the following packages:

■ scanner: Package scanner turns source text into tokens, including INDENT and
DEDENT tokens derived from line indentation.

■ parser: Package parser is a recursive-descent parser producing an AST.

■ ast: Package ast defines the node types of the abstract syntax tree.

■ interp: Package interp is a tree-walking interpreter for ASTs.

■ runtime: Package runtime provides scopes, values, builtins, signals, timers,
resources and the host interface for an embedding engine.

■ inherit: Package inherit resolves script classes along their extends-chain.

■ exports: Package exports describes script variables for a host inspector.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package lsc
