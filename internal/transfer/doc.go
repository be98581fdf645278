// Package transfer implements gasless SOL transfers through a paymaster.
//
// The submission flow:
//  1. Load the sealed session and validate the request.
//  2. Fetch the paymaster's config (fee payer, sponsorship rules) and fail
//     early when the amount is over the advertised cap.
//  3. Fetch a recent blockhash from the paymaster.
//  4. Build the transaction: system transfer from the smart wallet, an
//     optional memo, the paymaster's account in the fee-payer slot.
//  5. Partially sign with the device key and hand the base64 transaction to
//     the paymaster, which adds the fee payer signature and broadcasts.
//  6. Record the submission locally as pending.
//
// Confirmation is never awaited inline; status and history refresh are
// separate explicit operations.
package transfer
