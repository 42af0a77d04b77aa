/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package identity

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/YECHAFLY/fabric-test/internal/fileutil"
	"github.com/YECHAFLY/fabric-test/internal/pkg/failure"
	"github.com/hyperledger/fabric-gateway/pkg/identity"
)

const (
	// X509Type 是钱包中 X.509 身份的类型
	X509Type = "X.509"
	// 钱包文件的扩展名
	idExtension = ".id"
)

// walletEntry 是钱包中一个身份文件的内容
type walletEntry struct {
	Credentials struct {
		Certificate string `json:"certificate"`
		PrivateKey  string `json:"privateKey"`
	} `json:"credentials"`
	MSPID   string `json:"mspId"`
	Type    string `json:"type"`
	Version int    `json:"version"`
}

// Credential 是从钱包中读取的用户身份
type Credential struct {
	Label       string
	MSPID       string
	Certificate []byte // PEM 编码的证书
	PrivateKey  []byte // PEM 编码的私钥

	id   *identity.X509Identity
	sign identity.Sign
}

// Identity 返回网关客户端身份
func (c *Credential) Identity() Identity {
	return c.id
}

// Sign 使用身份的私钥对摘要签名
func (c *Credential) Sign(digest []byte) ([]byte, error) {
	return c.sign(digest)
}

// Wallet 按标签查找用户凭证
type Wallet interface {
	Get(label string) (*Credential, error)
}

// FileSystemWallet 是目录形式的钱包, 每个身份保存为 <label>.id 文件
type FileSystemWallet struct {
	dir string
}

// NewFileSystemWallet 返回指定目录下的钱包, 目录不存在时不报错, 查找时返回 CredentialNotFound
func NewFileSystemWallet(dir string) *FileSystemWallet {
	return &FileSystemWallet{dir: dir}
}

// Dir 返回钱包目录
func (w *FileSystemWallet) Dir() string {
	return w.dir
}

// Exists 报告钱包中是否存在给定标签的身份
func (w *FileSystemWallet) Exists(label string) bool {
	exists, _, err := fileutil.FileExists(w.path(label))
	return err == nil && exists
}

// Put 将凭证写入钱包, 已存在时覆盖
func (w *FileSystemWallet) Put(label string, cred *Credential) error {
	entry := walletEntry{
		MSPID:   cred.MSPID,
		Type:    X509Type,
		Version: 1,
	}
	entry.Credentials.Certificate = string(cred.Certificate)
	entry.Credentials.PrivateKey = string(cred.PrivateKey)

	data, err := json.Marshal(&entry)
	if err != nil {
		return failure.Wrapf(err, failure.Configuration, "无法序列化身份 %s", label)
	}
	if err := os.MkdirAll(w.dir, 0o700); err != nil {
		return failure.Wrapf(err, failure.Configuration, "无法创建钱包目录 %s", w.dir)
	}
	if err := ioutil.WriteFile(w.path(label), data, 0o600); err != nil {
		return failure.Wrapf(err, failure.Configuration, "无法写入身份 %s", label)
	}
	return nil
}

// Get 读取给定标签的身份.
// 身份不存在时返回 CredentialNotFound, 文件内容无效时返回 Configuration 错误.
func (w *FileSystemWallet) Get(label string) (*Credential, error) {
	exists, _, err := fileutil.FileExists(w.path(label))
	if err != nil {
		return nil, failure.Wrapf(err, failure.Configuration, "无法读取身份 %s", label)
	}
	if !exists {
		if dirExists, _ := fileutil.DirExists(w.dir); !dirExists {
			return nil, failure.Errorf(failure.CredentialNotFound,
				"An identity for the user %s does not exist in the wallet %s (钱包目录不存在)", label, w.dir)
		}
		return nil, failure.Errorf(failure.CredentialNotFound,
			"An identity for the user %s does not exist in the wallet %s", label, w.dir)
	}

	data, err := ioutil.ReadFile(w.path(label))
	if err != nil {
		return nil, failure.Wrapf(err, failure.Configuration, "无法读取身份 %s", label)
	}

	entry := &walletEntry{}
	if err := json.Unmarshal(data, entry); err != nil {
		return nil, failure.Wrapf(err, failure.Configuration, "身份 %s 不是有效的钱包文件", label)
	}

	if entry.Type != "" && entry.Type != X509Type {
		return nil, failure.Errorf(failure.Configuration, "身份 %s 的类型 %s 不受支持", label, entry.Type)
	}
	cred, err := NewCredential(entry.MSPID, []byte(entry.Credentials.Certificate), []byte(entry.Credentials.PrivateKey))
	if err != nil {
		return nil, failure.Wrapf(err, failure.Configuration, "身份 %s", label)
	}
	cred.Label = label
	return cred, nil
}

func (w *FileSystemWallet) path(label string) string {
	return filepath.Join(w.dir, label+idExtension)
}

// NewCredential 由 PEM 编码的证书和私钥创建凭证
func NewCredential(mspID string, certPEM, keyPEM []byte) (*Credential, error) {
	if mspID == "" {
		return nil, failure.New(failure.Configuration, "缺少 mspId")
	}

	cert, err := identity.CertificateFromPEM(certPEM)
	if err != nil {
		return nil, failure.Wrap(err, failure.Configuration, "无法解析证书")
	}
	id, err := identity.NewX509Identity(mspID, cert)
	if err != nil {
		return nil, failure.Wrap(err, failure.Configuration, "无法创建 X.509 身份")
	}

	key, err := identity.PrivateKeyFromPEM(keyPEM)
	if err != nil {
		return nil, failure.Wrap(err, failure.Configuration, "无法解析私钥")
	}
	sign, err := identity.NewPrivateKeySign(key)
	if err != nil {
		return nil, failure.Wrap(err, failure.Configuration, "无法创建签名函数")
	}

	return &Credential{
		MSPID:       mspID,
		Certificate: certPEM,
		PrivateKey:  keyPEM,
		id:          id,
		sign:        sign,
	}, nil
}
