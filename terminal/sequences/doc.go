/*
Control sequences are the only channel a program has to ask the terminal for
anything beyond displaying text: both commands and queries travel as byte
sequences, most of them introduced by the escape character (0x1B).

This repository deals in exactly two of the many sequence families:

  - OSC ("Operating System Command"): carries the text sizing directive
    (code 66) this module encodes.
  - CSI ("Control Sequence Introducer"): carries the cursor position
    request/report pair the capability probe relies on.

Everything else a terminal understands, including parsing arbitrary
sequences arriving from a host, is out of scope here.
*/
package sequences
