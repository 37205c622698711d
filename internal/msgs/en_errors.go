// Copyright © 2025 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package msgs

import (
	"net/http"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"golang.org/x/text/language"
)

var registered = false
var ffe = func(key, translation string, statusHint ...int) i18n.ErrorMessageKey {
	if !registered {
		i18n.RegisterPrefix("PY01", "Payroll Client")
		registered = true
	}
	return i18n.FFE(language.AmericanEnglish, key, translation, statusHint...)
}

var (
	// Config PY0100XX
	MsgConfigFileMissing            = ffe("PY010000", "Config file not found at path: %s")
	MsgConfigFileReadError          = ffe("PY010001", "Failed to read config file %s with error: %s")
	MsgConfigFileParseError         = ffe("PY010002", "Failed to parse config file with error: %s")
	MsgConfigInvalidContractAddress = ffe("PY010004", "Invalid contract address '%s'")
	MsgConfigBlockchainURLRequired  = ffe("PY010005", "Blockchain JSON/RPC URL must be configured")
	MsgConfigEncryptionURLRequired  = ffe("PY010006", "Encryption relayer URL must be configured")
	MsgConfigInvalidTXVersion       = ffe("PY010007", "Invalid transaction version '%s' (must be legacy_original, legacy_eip155 or eip1559)")
	MsgConfigInvalidGasPrice        = ffe("PY010008", "Invalid fixed gas price '%s'")
	MsgTLSInvalidCAFile             = ffe("PY010010", "Invalid CA certificates file")
	MsgTLSConfigFailed              = ffe("PY010011", "Failed to initialize TLS configuration")
	MsgTLSInvalidKeyPairFiles       = ffe("PY010012", "Invalid certificate and key pair files")

	// Types PY0101XX
	MsgContextCanceled            = ffe("PY010100", "Context canceled")
	MsgTypesScanFail              = ffe("PY010101", "Unable to scan type %T into type %T")
	MsgTypesInvalidHex            = ffe("PY010102", "Invalid hex: %s")
	MsgTypesValueInvalidBytes32   = ffe("PY010103", "Failed to parse value as 32 byte hex string (parsedBytes=%d)")
	MsgTypesInvalidUint64         = ffe("PY010104", "Invalid uint64 value '%s'")
	MsgTypesInvalidAddress        = ffe("PY010105", "Invalid address '%s'")
	MsgTypesAddressChecksumFailed = ffe("PY010106", "Address checksum mismatch for mixed-case address '%s'")
	MsgInflightRequestCancelled   = ffe("PY010107", "Request cancelled after %s")
	MsgTypesTimeParseFail         = ffe("PY010108", "Cannot parse time as RFC3339 or unix timestamp: %s")

	// JSON/RPC client PY0102XX
	MsgRPCClientInvalidHTTPURL    = ffe("PY010200", "Invalid HTTP URL '%s'")
	MsgRPCClientRequestFailed     = ffe("PY010201", "Request failed: %s")
	MsgRPCClientResultParseFailed = ffe("PY010202", "Failed to parse result (expected=%T): %s")
	MsgRPCClientInvalidParam      = ffe("PY010203", "Invalid parameter at position %d for method %s: %s")
	MsgRPCClientHTTPError         = ffe("PY010205", "HTTP %d: %s")

	// JSON/RPC server PY0103XX
	MsgJSONRPCInvalidRequest        = ffe("PY010300", "Invalid JSON/RPC request data")
	MsgJSONRPCMissingRequestID      = ffe("PY010301", "Invalid JSON/RPC request. Must set request ID")
	MsgJSONRPCUnsupportedMethod     = ffe("PY010302", "method not supported: %s")
	MsgJSONRPCIncorrectParamCount   = ffe("PY010303", "Method '%s' requires %d params (supplied=%d)")
	MsgJSONRPCInvalidParam          = ffe("PY010304", "Invalid parameter for method '%s' at position %d: %s")
	MsgJSONRPCResultSerialization   = ffe("PY010305", "Method '%s' returned a result that could not be serialized: %s")
	MsgHTTPServerStartFailed        = ffe("PY010307", "Failed to start server on '%s'")
	MsgHTTPServerMissingPort        = ffe("PY010308", "HTTP server port must be specified for '%s'")
	MsgHTTPServerNoWSUpgradeSupport = ffe("PY010309", "WebSocket upgrade not supported on this connection")

	// Ethereum client PY0104XX
	MsgEthClientChainIDFailed      = ffe("PY010400", "Failed to query chain ID from blockchain")
	MsgEthClientFunctionNotFound   = ffe("PY010401", "Function '%s' not found in ABI")
	MsgEthClientInvalidInput       = ffe("PY010402", "Invalid input for function '%s'")
	MsgEthClientMissingInput       = ffe("PY010403", "Input is required for function '%s'")
	MsgEthClientMissingOutput      = ffe("PY010404", "Output was not requested for call to function '%s'")
	MsgEthClientMissingTo          = ffe("PY010405", "A target address is required for function '%s'")
	MsgEthClientMissingSigner      = ffe("PY010406", "A signer is required to send a transaction to function '%s'")
	MsgEthClientReverted           = ffe("PY010408", "Execution reverted: %s")
	MsgEthClientRevertedNoData     = ffe("PY010409", "Execution reverted with no reason")
	MsgEthClientDecodeOutputFailed = ffe("PY010410", "Failed to decode output of function '%s'")
	MsgEthClientReceiptFailed      = ffe("PY010413", "Failed to query receipt for transaction %s: %s")
	MsgEthClientABIJson            = ffe("PY010414", "Failed to parse contract ABI")
	MsgEthClientSignFailed         = ffe("PY010418", "Failed to sign transaction: %s")
	MsgEthClientEventDecodeFailed  = ffe("PY010419", "Failed to decode event '%s': %s")

	// Wallet PY0105XX
	MsgWalletMissingKey           = ffe("PY010500", "Local wallet requires one of privateKey, privateKeyFile or mnemonic")
	MsgWalletInvalidKey           = ffe("PY010501", "Invalid private key: %s")
	MsgWalletInvalidMnemonic      = ffe("PY010502", "Invalid mnemonic seed phrase")
	MsgWalletInvalidHDPath        = ffe("PY010503", "Invalid HD derivation path '%s'")
	MsgWalletHDDerivationFailed   = ffe("PY010504", "HD key derivation failed: %s")
	MsgWalletUnknownType          = ffe("PY010505", "Unknown wallet type '%s'")
	MsgWalletRemoteNoAccounts     = ffe("PY010506", "Remote signer returned no accounts")
	MsgWalletRemoteSignFailed     = ffe("PY010507", "Remote signer failed to sign transaction: %s")
	MsgWalletRemoteAccountMissing = ffe("PY010508", "Account %s is not available on the remote signer")
	MsgWalletKeyFileReadFailed    = ffe("PY010509", "Failed to read private key file '%s'")

	// Encryption PY0106XX
	MsgEncryptionRequestFailed   = ffe("PY010600", "Failed to encrypt input: %s")
	MsgEncryptionInvalidResponse = ffe("PY010601", "Encryption service returned an invalid response: %s")
	MsgDecryptionRequestFailed   = ffe("PY010602", "Failed to decrypt ciphertext %s: %s")
	MsgDecryptionInvalidResponse = ffe("PY010603", "Decryption service returned an invalid value: %s")

	// Validation PY0107XX
	MsgValidationInvalidAddress    = ffe("PY010700", "Invalid recipient address '%s'", http.StatusBadRequest)
	MsgValidationSelfPayment       = ffe("PY010701", "Cannot send payment to yourself", http.StatusBadRequest)
	MsgValidationInvalidAmount     = ffe("PY010702", "Amount must be a non-negative whole number: '%s'", http.StatusBadRequest)
	MsgValidationAmountOutOfRange  = ffe("PY010703", "Amount %s exceeds the maximum of %d", http.StatusBadRequest)
	MsgValidationMemoTooLong       = ffe("PY010704", "Memo is %d characters (maximum %d)", http.StatusBadRequest)
	MsgValidationMemoRequired      = ffe("PY010705", "A memo is required", http.StatusBadRequest)
	MsgValidationEmptyBatch        = ffe("PY010706", "No valid payments in batch", http.StatusBadRequest)
	MsgValidationBatchTooLarge     = ffe("PY010707", "Maximum %d payments per batch", http.StatusBadRequest)
	MsgValidationBatchEntryInvalid = ffe("PY010708", "Payment %d: %s", http.StatusBadRequest)
	MsgValidationBatchIndex        = ffe("PY010709", "Batch entry index %d out of range (entries=%d)", http.StatusBadRequest)
	MsgValidationBatchLastEntry    = ffe("PY010710", "Batch must keep at least one entry", http.StatusBadRequest)
	MsgValidationBatchField        = ffe("PY010711", "Unknown batch entry field '%s'", http.StatusBadRequest)
	MsgValidationInvalidPaymentID  = ffe("PY010712", "Invalid payment ID '%s'", http.StatusBadRequest)
	MsgValidationViewFieldsMissing = ffe("PY010713", "Recipient address and payment ID are required", http.StatusBadRequest)

	// Payroll workflows PY0108XX
	MsgPayrollNotConnected       = ffe("PY010800", "Wallet not connected", http.StatusConflict)
	MsgPayrollEncryptionFailed   = ffe("PY010801", "Encryption failed: %s")
	MsgPayrollNetworkUnavailable = ffe("PY010802", "Ledger unavailable: %s", http.StatusServiceUnavailable)
	MsgPayrollRejected           = ffe("PY010803", "Transaction rejected: %s")
	MsgPayrollUserCancelled      = ffe("PY010804", "Transaction cancelled by user: %s")
	MsgPayrollPaymentNotFound    = ffe("PY010805", "Payment %d not found for recipient %s", http.StatusNotFound)
	MsgPayrollNoViewedPayment    = ffe("PY010806", "No payment is currently being viewed", http.StatusNotFound)
	MsgPayrollUnknownOpKind      = ffe("PY010808", "Unknown operation kind '%s'", http.StatusBadRequest)
	MsgPayrollDecryptFailed      = ffe("PY010809", "Decryption failed: %s")

	// Persistence PY0109XX
	MsgPersistenceInvalidType      = ffe("PY010900", "Invalid database type '%s'")
	MsgPersistenceMissingDSN       = ffe("PY010901", "Database DSN must be configured")
	MsgPersistenceInitFailed       = ffe("PY010902", "Database init failed")
	MsgPersistenceMigrationFailed  = ffe("PY010903", "Database migration failed")
	MsgPersistenceMissingMigration = ffe("PY010904", "Database migrations directory must be configured when autoMigrate is enabled")
	MsgPersistenceQueryFailed      = ffe("PY010905", "Database query failed")

	// Bootstrap PY0110XX
	MsgBootstrapComponentFailed = ffe("PY011000", "Failed to start component '%s'")
	MsgBootstrapConfigRequired  = ffe("PY011001", "Config file must be specified")
	MsgBootstrapBatchFileRead   = ffe("PY011002", "Failed to read batch file '%s'")
	MsgBootstrapBatchFileParse  = ffe("PY011003", "Batch file '%s' must be a list of {address,amount,memo} entries")
	MsgBootstrapServeFailed     = ffe("PY011004", "Server exited with a failure, see logs for details")

	// Ledger gateway PY0111XX
	MsgLedgerReadFailed          = ffe("PY011100", "Ledger read '%s' failed: %s")
	MsgLedgerSubmitFailed        = ffe("PY011101", "Failed to submit '%s': %s")
	MsgLedgerReceiptTimeout      = ffe("PY011102", "Timed out after %s waiting for transaction %s")
	MsgLedgerTransactionFailed   = ffe("PY011103", "Transaction %s failed in block %d: %s")
	MsgLedgerBatchLengthMismatch = ffe("PY011104", "Batch arrays must be equal length (recipients=%d inputs=%d memos=%d)")
	MsgLedgerEmptyBatch          = ffe("PY011105", "Batch must contain between 1 and %d payments (supplied=%d)")
	MsgLedgerPaymentNotFound     = ffe("PY011106", "Payment %d does not exist for recipient %s: %s")
)
