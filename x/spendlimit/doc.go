/*
Package spendlimit implements a policy for a multiclique account that manages
a DAO.

The number of required signatures depends on the invoked contract and
function. DAO core changes require 80% or 66% of the signers, votes and asset
administration have their own rules. Token contracts with a configured spend
limit need only half of the signers, but the total amount transferred from the
account cannot exceed the limit until the account resets it.
*/
package spendlimit
