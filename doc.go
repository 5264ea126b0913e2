// Package calc implements the expression engine of a keypad calculator.
//
// Expressions are written the way a keypad builds them: "2π", "3(4+5)" and
// "2sin(30)" are implicit multiplications, "50%" is 0.5 and "5!" is 120.
// Operators may use their keypad glyphs × ÷ − or the ASCII * / -. "-2^2" is
// "(−2)^2", since negation binds more tightly than exponentiation, and "2^3^2"
// is "2^(3^2)".
//
// Parse and Eval give typed results and errors. Evaluate is the boundary for
// front-ends: it returns a display string, or ErrorText for any input that
// cannot be computed.
package calc
