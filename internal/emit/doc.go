// Package emit renders the final script: one set command per leaf, with
// every position marker replaced by the predicate selection chose for it.
//
// Emission is stateful. A predicate referencing a field that no command has
// created yet carries an "or count(field)=0" escape clause; once the
// command creating that field has been rendered, later commands for the
// same position drop the clause. The emitter therefore advances the
// selection states on the group as it writes.
package emit
